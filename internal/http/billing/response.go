package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/billing"
)

type invoiceResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomCode  string    `json:"room_code"`
	TenancyID uuid.UUID `json:"tenancy_id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`

	RoomFee         int64 `json:"room_fee"`
	DailyDeduction  int64 `json:"daily_deduction"`
	AbsentDays      int   `json:"absent_days"`
	AbsentDeduction int64 `json:"absent_deduction"`

	ElectricFee     int64 `json:"electric_fee"`
	WaterFee        int64 `json:"water_fee"`
	ElectricMetered bool  `json:"electric_metered"`
	WaterMetered    bool  `json:"water_metered"`

	GarbageFee int64 `json:"garbage_fee"`
	WifiFee    int64 `json:"wifi_fee"`
	TVFee      int64 `json:"tv_fee"`
	LaundryFee int64 `json:"laundry_fee"`

	OtherFee     int64  `json:"other_fee"`
	OtherFeeNote string `json:"other_fee_note,omitempty"`

	PreviousDebt   int64 `json:"previous_debt"`
	PreviousCredit int64 `json:"previous_credit"`

	Total      int64          `json:"total"`
	PaidAmount int64          `json:"paid_amount"`
	Status     billing.Status `json:"status"`

	PaymentDate *time.Time `json:"payment_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(inv *billing.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:              inv.ID,
		RoomID:          inv.RoomID,
		RoomCode:        inv.RoomCode,
		TenancyID:       inv.TenancyID,
		Month:           inv.Period.Month,
		Year:            inv.Period.Year,
		RoomFee:         inv.RoomFee,
		DailyDeduction:  inv.DailyDeduction,
		AbsentDays:      inv.AbsentDays,
		AbsentDeduction: inv.AbsentDeduction,
		ElectricFee:     inv.ElectricFee,
		WaterFee:        inv.WaterFee,
		ElectricMetered: inv.ElectricMetered,
		WaterMetered:    inv.WaterMetered,
		GarbageFee:      inv.GarbageFee,
		WifiFee:         inv.WifiFee,
		TVFee:           inv.TVFee,
		LaundryFee:      inv.LaundryFee,
		OtherFee:        inv.OtherFee,
		OtherFeeNote:    inv.OtherFeeNote,
		PreviousDebt:    inv.PreviousDebt,
		PreviousCredit:  inv.PreviousCredit,
		Total:           inv.Total,
		PaidAmount:      inv.PaidAmount,
		Status:          inv.Status,
		PaymentDate:     inv.PaymentDate,
		Notes:           inv.Notes,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func toResponseList(invoices []*billing.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}

type paymentResponse struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toPaymentResponseList(payments []*billing.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = paymentResponse{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			PaidAt:    p.PaidAt,
			Note:      p.Note,
			CreatedAt: p.CreatedAt,
		}
	}

	return resp
}

type generateResponse struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Created []createdResponse `json:"created"`
	Skipped []skippedResponse `json:"skipped"`
}

type createdResponse struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomCode  string    `json:"room_code"`
}

type skippedResponse struct {
	RoomID   uuid.UUID `json:"room_id"`
	RoomCode string    `json:"room_code"`
	Reason   string    `json:"reason"`
	Detail   string    `json:"detail,omitempty"`
}

func toGenerateResponse(result *billing.Result) generateResponse {
	resp := generateResponse{
		Month:   result.Period.Month,
		Year:    result.Period.Year,
		Created: make([]createdResponse, len(result.Created)),
		Skipped: make([]skippedResponse, len(result.Skipped)),
	}

	for i, c := range result.Created {
		resp.Created[i] = createdResponse{
			InvoiceID: c.InvoiceID,
			RoomID:    c.RoomID,
			RoomCode:  c.RoomCode,
		}
	}

	for i, s := range result.Skipped {
		resp.Skipped[i] = skippedResponse{
			RoomID:   s.RoomID,
			RoomCode: s.RoomCode,
			Reason:   s.Reason,
			Detail:   s.Detail,
		}
	}

	return resp
}
