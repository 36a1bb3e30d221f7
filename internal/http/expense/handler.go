package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/expense"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type expenseRequest struct {
	// LocationID omitted means the expense is shared across locations.
	LocationID  *uuid.UUID `json:"location_id"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	SpentAt     time.Time  `json:"spent_at"`
}

func (req expenseRequest) params() expense.Params {
	return expense.Params{
		LocationID:  req.LocationID,
		Month:       req.Month,
		Year:        req.Year,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		SpentAt:     req.SpentAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := expense.Filter{}

	q := r.URL.Query()

	if s := q.Get("location_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.LocationID = &id
		}
	}

	if m, err := strconv.Atoi(q.Get("month")); err == nil {
		filter.Month = &m
	}

	if y, err := strconv.Atoi(q.Get("year")); err == nil {
		filter.Year = &y
	}

	if s := q.Get("category"); s != "" {
		filter.Category = &s
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type expenseResponse struct {
	ID           uuid.UUID  `json:"id"`
	LocationID   *uuid.UUID `json:"location_id,omitempty"`
	LocationName string     `json:"location_name,omitempty"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	Category     string     `json:"category"`
	Description  string     `json:"description,omitempty"`
	Amount       int64      `json:"amount"`
	SpentAt      time.Time  `json:"spent_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		LocationID:   e.LocationID,
		LocationName: e.LocationName,
		Month:        e.Month,
		Year:         e.Year,
		Category:     e.Category,
		Description:  e.Description,
		Amount:       e.Amount,
		SpentAt:      e.SpentAt,
		CreatedAt:    e.CreatedAt,
	}
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
	case errors.Is(err, expense.ErrNotFound):
		http.Error(w, "expense not found", http.StatusNotFound)
	case errors.Is(err, expense.ErrInvalidAmount),
		errors.Is(err, expense.ErrInvalidPeriod),
		errors.Is(err, expense.ErrInvalidCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
