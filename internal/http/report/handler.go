package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/monthly", h.monthly)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	month, year := periodOrNow(r)

	d, err := h.svc.Dashboard(r.Context(), month, year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, dashboardResponse{
		Locations:      d.Locations,
		Rooms:          d.Rooms,
		OccupiedRooms:  d.OccupiedRooms,
		VacantRooms:    d.VacantRooms,
		Month:          d.Month,
		Year:           d.Year,
		InvoiceCount:   d.InvoiceCount,
		UnpaidInvoices: d.UnpaidInvoices,
		Billed:         d.Billed,
		Collected:      d.Collected,
		Outstanding:    d.Outstanding,
	})
}

type dashboardResponse struct {
	Locations      int   `json:"locations"`
	Rooms          int   `json:"rooms"`
	OccupiedRooms  int   `json:"occupied_rooms"`
	VacantRooms    int   `json:"vacant_rooms"`
	Month          int   `json:"month"`
	Year           int   `json:"year"`
	InvoiceCount   int   `json:"invoice_count"`
	UnpaidInvoices int   `json:"unpaid_invoices"`
	Billed         int64 `json:"billed"`
	Collected      int64 `json:"collected"`
	Outstanding    int64 `json:"outstanding"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	month, year := periodOrNow(r)

	var locationID *uuid.UUID

	if s := r.URL.Query().Get("location_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid location_id", http.StatusBadRequest)
			return
		}

		locationID = &id
	}

	m, err := h.svc.Monthly(r.Context(), locationID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toMonthlyResponse(m))
}

// periodOrNow reads month/year query params, defaulting to the current
// calendar month.
func periodOrNow(r *http.Request) (int, int) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	q := r.URL.Query()

	if m, err := strconv.Atoi(q.Get("month")); err == nil {
		month = m
	}

	if y, err := strconv.Atoi(q.Get("year")); err == nil {
		year = y
	}

	return month, year
}

type unpaidResponse struct {
	InvoiceID  uuid.UUID `json:"invoice_id"`
	RoomCode   string    `json:"room_code"`
	TenantName string    `json:"tenant_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Total      int64     `json:"total"`
	PaidAmount int64     `json:"paid_amount"`
	Remaining  int64     `json:"remaining"`
}

type monthlyResponse struct {
	Month        int              `json:"month"`
	Year         int              `json:"year"`
	LocationID   *uuid.UUID       `json:"location_id,omitempty"`
	Billed       int64            `json:"billed"`
	Collected    int64            `json:"collected"`
	Outstanding  int64            `json:"outstanding"`
	Expenses     int64            `json:"expenses"`
	Net          int64            `json:"net"`
	InvoiceCount int              `json:"invoice_count"`
	PaidCount    int              `json:"paid_count"`
	Unpaid       []unpaidResponse `json:"unpaid"`
}

func toMonthlyResponse(m *report.Monthly) monthlyResponse {
	resp := monthlyResponse{
		Month:        m.Month,
		Year:         m.Year,
		LocationID:   m.LocationID,
		Billed:       m.Billed,
		Collected:    m.Collected,
		Outstanding:  m.Outstanding,
		Expenses:     m.Expenses,
		Net:          m.Net,
		InvoiceCount: m.InvoiceCount,
		PaidCount:    m.PaidCount,
		Unpaid:       make([]unpaidResponse, len(m.Unpaid)),
	}

	for i, u := range m.Unpaid {
		resp.Unpaid[i] = unpaidResponse{
			InvoiceID:  u.InvoiceID,
			RoomCode:   u.RoomCode,
			TenantName: u.TenantName,
			Phone:      u.Phone,
			Total:      u.Total,
			PaidAmount: u.PaidAmount,
			Remaining:  u.Remaining,
		}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, report.ErrInvalidPeriod) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
