package meter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangvn/nhatro/internal/importer/readings"
	"github.com/hoangvn/nhatro/internal/meter"
)

type Handler struct {
	svc      *meter.Service
	importer *readings.Importer
}

func NewHandler(svc *meter.Service, importer *readings.Importer) *Handler {
	return &Handler{svc: svc, importer: importer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.createMeter)
	r.Get("/", h.listMeters)
	r.Post("/readings", h.recordReadings)
	r.Get("/readings", h.listReadings)
	r.Post("/readings/import", h.importSheet)
}

type createMeterRequest struct {
	RoomID uuid.UUID  `json:"room_id"`
	Kind   meter.Kind `json:"kind"`
	Code   string     `json:"code"`
	Notes  string     `json:"notes"`
}

func (h *Handler) createMeter(w http.ResponseWriter, r *http.Request) {
	var req createMeterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.AddMeter(r.Context(), req.RoomID, req.Kind, req.Code, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMeterResponse(m))
}

func (h *Handler) listMeters(w http.ResponseWriter, r *http.Request) {
	filter := meter.MeterFilter{}

	if s := r.URL.Query().Get("room_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RoomID = &id
		}
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(meter.Kind(s))
	}

	meters, err := h.svc.ListMeters(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]meterResponse, len(meters))
	for i, m := range meters {
		resp[i] = toMeterResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}

type readingEntry struct {
	MeterID uuid.UUID        `json:"meter_id"`
	Old     *decimal.Decimal `json:"old,omitempty"`
	New     decimal.Decimal  `json:"new"`
}

type recordReadingsRequest struct {
	Month    int            `json:"month"`
	Year     int            `json:"year"`
	Readings []readingEntry `json:"readings"`
}

type readingOutcome struct {
	MeterID uuid.UUID        `json:"meter_id"`
	Reading *readingResponse `json:"reading,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func (h *Handler) recordReadings(w http.ResponseWriter, r *http.Request) {
	var req recordReadingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]meter.ReadingParams, len(req.Readings))
	for i, entry := range req.Readings {
		items[i] = meter.ReadingParams{
			MeterID: entry.MeterID,
			Month:   req.Month,
			Year:    req.Year,
			Old:     entry.Old,
			New:     entry.New,
		}
	}

	results := h.svc.RecordBatch(r.Context(), items)

	resp := make([]readingOutcome, len(results))
	for i, result := range results {
		resp[i] = readingOutcome{MeterID: result.MeterID}

		if result.Err != nil {
			resp[i].Error = result.Err.Error()
			continue
		}

		rr := toReadingResponse(result.Reading)
		resp[i].Reading = &rr
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listReadings(w http.ResponseWriter, r *http.Request) {
	filter := meter.ReadingFilter{}

	q := r.URL.Query()

	if s := q.Get("meter_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.MeterID = &id
		}
	}

	if s := q.Get("room_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RoomID = &id
		}
	}

	if m, err := strconv.Atoi(q.Get("month")); err == nil {
		filter.Month = &m
	}

	if y, err := strconv.Atoi(q.Get("year")); err == nil {
		filter.Year = &y
	}

	rs, err := h.svc.ListReadings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]readingResponse, len(rs))
	for i, reading := range rs {
		resp[i] = toReadingResponse(reading)
	}

	writeJSON(w, http.StatusOK, resp)
}

type importRowResponse struct {
	RoomCode string           `json:"room_code"`
	Kind     meter.Kind       `json:"kind"`
	Reading  *readingResponse `json:"reading,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type importResponse struct {
	Month    int                 `json:"month"`
	Year     int                 `json:"year"`
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Rows     []importRowResponse `json:"rows"`
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil {
		http.Error(w, "month field is required", http.StatusBadRequest)
		return
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		http.Error(w, "year field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importer.Import(r.Context(), file, month, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{
		Month:    result.Month,
		Year:     result.Year,
		Imported: result.Imported,
		Failed:   result.Failed,
		Rows:     make([]importRowResponse, len(result.Rows)),
	}

	for i, row := range result.Rows {
		resp.Rows[i] = importRowResponse{RoomCode: row.RoomCode, Kind: row.Kind}

		if row.Err != nil {
			resp.Rows[i].Error = row.Err.Error()
			continue
		}

		rr := toReadingResponse(row.Reading)
		resp.Rows[i].Reading = &rr
	}

	writeJSON(w, http.StatusOK, resp)
}

type meterResponse struct {
	ID            uuid.UUID        `json:"id"`
	RoomID        uuid.UUID        `json:"room_id"`
	Kind          meter.Kind       `json:"kind"`
	Code          string           `json:"code,omitempty"`
	LatestReading *decimal.Decimal `json:"latest_reading,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toMeterResponse(m *meter.Meter) meterResponse {
	return meterResponse{
		ID:            m.ID,
		RoomID:        m.RoomID,
		Kind:          m.Kind,
		Code:          m.Code,
		LatestReading: m.LatestReading,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

type readingResponse struct {
	ID          uuid.UUID       `json:"id"`
	MeterID     uuid.UUID       `json:"meter_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Old         decimal.Decimal `json:"old"`
	New         decimal.Decimal `json:"new"`
	Consumption decimal.Decimal `json:"consumption"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toReadingResponse(r *meter.Reading) readingResponse {
	return readingResponse{
		ID:          r.ID,
		MeterID:     r.MeterID,
		Month:       r.Month,
		Year:        r.Year,
		Old:         r.Old,
		New:         r.New,
		Consumption: r.Consumption,
		CreatedAt:   r.CreatedAt,
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
	case errors.Is(err, meter.ErrNotFound):
		http.Error(w, "meter not found", http.StatusNotFound)
	case errors.Is(err, meter.ErrInvalidPeriod),
		errors.Is(err, meter.ErrNegativeReading),
		errors.Is(err, meter.ErrReadingOrder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, meter.ErrMeterExists),
		errors.Is(err, meter.ErrDuplicateReading):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
