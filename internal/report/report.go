package report

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// Dashboard is the landing-page summary: occupancy and how much of the
// current month is still outstanding.
type Dashboard struct {
	Locations      int
	Rooms          int
	OccupiedRooms  int
	VacantRooms    int
	Month          int
	Year           int
	InvoiceCount   int
	UnpaidInvoices int
	Billed         int64
	Collected      int64
	Outstanding    int64
}

// Monthly is the per-period profit statement. Net is cash collected
// minus expenses, not billed minus expenses: unpaid rent is not income.
type Monthly struct {
	Month        int
	Year         int
	LocationID   *uuid.UUID
	Billed       int64
	Collected    int64
	Outstanding  int64
	Expenses     int64
	Net          int64
	InvoiceCount int
	PaidCount    int
	Unpaid       []UnpaidInvoice
}

// UnpaidInvoice is one open line on the monthly report.
type UnpaidInvoice struct {
	InvoiceID  uuid.UUID
	RoomCode   string
	TenantName string
	Phone      string
	Total      int64
	PaidAmount int64
	Remaining  int64
}
