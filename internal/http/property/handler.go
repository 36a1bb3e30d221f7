package property

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/property"
)

type Handler struct {
	svc *property.Service
}

func NewHandler(svc *property.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/locations", func(r chi.Router) {
		r.Post("/", h.createLocation)
		r.Get("/", h.listLocations)
		r.Get("/{id}", h.getLocation)
		r.Put("/{id}", h.updateLocation)
		r.Delete("/{id}", h.deleteLocation)
		r.Get("/{id}/room-types", h.listRoomTypes)
	})

	r.Route("/room-types", func(r chi.Router) {
		r.Post("/", h.createRoomType)
		r.Put("/{id}", h.updateRoomType)
		r.Delete("/{id}", h.deleteRoomType)
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.createRoom)
		r.Get("/", h.listRooms)
		r.Get("/{id}", h.getRoom)
		r.Patch("/{id}", h.updateRoom)
		r.Delete("/{id}", h.deleteRoom)
	})

	r.Route("/tenancies", func(r chi.Router) {
		r.Post("/", h.moveIn)
		r.Get("/", h.listTenancies)
		r.Get("/{id}", h.getTenancy)
		r.Post("/{id}/end", h.moveOut)
		r.Post("/{id}/move", h.move)
	})
}

type locationRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	OwnerName     string `json:"owner_name"`
	OwnerPhone    string `json:"owner_phone"`
	ElectricPrice int64  `json:"electric_price"`
	WaterPrice    int64  `json:"water_price"`
	GarbageFee    int64  `json:"garbage_fee"`
	WifiFee       int64  `json:"wifi_fee"`
	TVFee         int64  `json:"tv_fee"`
	LaundryFee    int64  `json:"laundry_fee"`
	PaymentDueDay int    `json:"payment_due_day"`
	Notes         string `json:"notes"`
}

func (req locationRequest) params() property.LocationParams {
	return property.LocationParams{
		Name:          req.Name,
		Address:       req.Address,
		OwnerName:     req.OwnerName,
		OwnerPhone:    req.OwnerPhone,
		ElectricPrice: req.ElectricPrice,
		WaterPrice:    req.WaterPrice,
		GarbageFee:    req.GarbageFee,
		WifiFee:       req.WifiFee,
		TVFee:         req.TVFee,
		LaundryFee:    req.LaundryFee,
		PaymentDueDay: req.PaymentDueDay,
		Notes:         req.Notes,
	}
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loc, err := h.svc.CreateLocation(r.Context(), req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLocationResponse(loc))
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.svc.ListLocations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]locationResponse, len(locations))
	for i, loc := range locations {
		resp[i] = toLocationResponse(loc)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	loc, err := h.svc.GetLocation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLocationResponse(loc))
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loc, err := h.svc.UpdateLocation(r.Context(), id, req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLocationResponse(loc))
}

func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteLocation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type roomTypeRequest struct {
	LocationID     uuid.UUID `json:"location_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Price          int64     `json:"price"`
	DailyDeduction int64     `json:"daily_deduction"`
	Description    string    `json:"description"`
}

func (h *Handler) createRoomType(w http.ResponseWriter, r *http.Request) {
	var req roomTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rt, err := h.svc.CreateRoomType(r.Context(), property.RoomTypeParams{
		LocationID:     req.LocationID,
		Code:           req.Code,
		Name:           req.Name,
		Price:          req.Price,
		DailyDeduction: req.DailyDeduction,
		Description:    req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRoomTypeResponse(rt))
}

func (h *Handler) listRoomTypes(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	roomTypes, err := h.svc.ListRoomTypes(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]roomTypeResponse, len(roomTypes))
	for i, rt := range roomTypes {
		resp[i] = toRoomTypeResponse(rt)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req roomTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rt := &property.RoomType{
		ID:             id,
		LocationID:     req.LocationID,
		Code:           req.Code,
		Name:           req.Name,
		Price:          req.Price,
		DailyDeduction: req.DailyDeduction,
		Description:    req.Description,
	}
	if err := h.svc.UpdateRoomType(r.Context(), rt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomTypeResponse(rt))
}

func (h *Handler) deleteRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteRoomType(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type roomRequest struct {
	LocationID uuid.UUID  `json:"location_id"`
	RoomTypeID *uuid.UUID `json:"room_type_id,omitempty"`
	Code       string     `json:"code"`
	Price      *int64     `json:"price,omitempty"`
	Notes      string     `json:"notes"`
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), property.RoomParams{
		LocationID: req.LocationID,
		RoomTypeID: req.RoomTypeID,
		Code:       req.Code,
		Price:      req.Price,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	filter := property.RoomFilter{}

	if s := r.URL.Query().Get("location_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.LocationID = &id
		}
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(property.RoomStatus(s))
	}

	rooms, err := h.svc.ListRooms(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]roomResponse, len(rooms))
	for i, room := range rooms {
		resp[i] = toRoomResponse(room)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	room, err := h.svc.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

type updateRoomRequest struct {
	RoomTypeID *uuid.UUID `json:"room_type_id,omitempty"`
	Code       *string    `json:"code,omitempty"`
	Price      *int64     `json:"price,omitempty"`
	ClearPrice bool       `json:"clear_price,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := h.svc.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.RoomTypeID != nil {
		room.RoomTypeID = req.RoomTypeID
	}

	if req.Code != nil {
		room.Code = *req.Code
	}

	if req.Price != nil {
		room.Price = req.Price
	}

	if req.ClearPrice {
		room.Price = nil
	}

	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if err := h.svc.UpdateRoom(r.Context(), room); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type moveInRequest struct {
	RoomID     uuid.UUID `json:"room_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	IDCard     string    `json:"id_card"`
	MoveInDate time.Time `json:"move_in_date"`
	Notes      string    `json:"notes"`
}

func (h *Handler) moveIn(w http.ResponseWriter, r *http.Request) {
	var req moveInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenancy, err := h.svc.MoveIn(r.Context(), property.MoveInParams{
		RoomID:     req.RoomID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		IDCard:     req.IDCard,
		MoveInDate: req.MoveInDate,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTenancyResponse(tenancy))
}

func (h *Handler) listTenancies(w http.ResponseWriter, r *http.Request) {
	filter := property.TenancyFilter{}

	if s := r.URL.Query().Get("room_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RoomID = &id
		}
	}

	if s := r.URL.Query().Get("active"); s != "" {
		filter.Active = new(s == "true")
	}

	tenancies, err := h.svc.ListTenancies(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]tenancyResponse, len(tenancies))
	for i, tn := range tenancies {
		resp[i] = toTenancyResponse(tn)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getTenancy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tenancy, err := h.svc.GetTenancy(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTenancyResponse(tenancy))
}

type moveOutRequest struct {
	MoveOutDate time.Time `json:"move_out_date"`
}

func (h *Handler) moveOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req moveOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	moveOut := req.MoveOutDate
	if moveOut.IsZero() {
		moveOut = time.Now()
	}

	tenancy, err := h.svc.MoveOut(r.Context(), id, moveOut)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTenancyResponse(tenancy))
}

type moveRequest struct {
	NewRoomID uuid.UUID `json:"new_room_id"`
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenancy, err := h.svc.Move(r.Context(), id, req.NewRoomID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTenancyResponse(tenancy))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, property.ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	case errors.Is(err, property.ErrInvalidPrice),
		errors.Is(err, property.ErrInvalidDueDay):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, property.ErrRoomOccupied),
		errors.Is(err, property.ErrTenancyEnded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
