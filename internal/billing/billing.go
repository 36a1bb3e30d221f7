package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period identifies one billing cycle as a (month, year) pair.
type Period struct {
	Month int
	Year  int
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}

	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}

	return nil
}

// Previous returns the immediately preceding calendar period,
// wrapping the year boundary.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}

	return Period{Month: p.Month - 1, Year: p.Year}
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

// Status represents the settlement state of an invoice. It is always
// derived from (paid amount, total), never written independently.
type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// StatusFor derives the invoice status from the cumulative paid amount
// and the invoice total.
func StatusFor(paidAmount, total int64) Status {
	switch {
	case paidAmount >= total:
		return StatusPaid
	case paidAmount > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// MeterKind distinguishes the two utility meters a room can have.
type MeterKind string

const (
	MeterElectric MeterKind = "electric"
	MeterWater    MeterKind = "water"
)

// Invoice is one month's bill for one room. All amounts are whole VND.
// The resolved tariff (room fee, daily deduction rate) is snapshotted at
// creation so later corrections never re-read current location prices.
type Invoice struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	RoomCode  string
	TenancyID uuid.UUID
	Period    Period

	RoomFee         int64 // base rent before absence deduction
	DailyDeduction  int64 // per absent day, from the room type at generation time
	AbsentDays      int
	AbsentDeduction int64

	ElectricFee     int64
	WaterFee        int64
	ElectricMetered bool // a reading exists for the period
	WaterMetered    bool

	GarbageFee int64
	WifiFee    int64
	TVFee      int64
	LaundryFee int64

	OtherFee     int64
	OtherFeeNote string

	PreviousDebt   int64
	PreviousCredit int64

	Total      int64
	PaidAmount int64
	Status     Status

	PaymentDate *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ComputeTotal sums all charges, subtracts the absence deduction and any
// carried-over credit, and floors the result at zero.
func (inv *Invoice) ComputeTotal() int64 {
	total := inv.RoomFee - inv.AbsentDeduction +
		inv.ElectricFee + inv.WaterFee +
		inv.GarbageFee + inv.WifiFee + inv.TVFee + inv.LaundryFee +
		inv.OtherFee +
		inv.PreviousDebt - inv.PreviousCredit

	return max(total, 0)
}

// RemainingDebt is the still-unsettled part of the total.
func (inv *Invoice) RemainingDebt() int64 {
	return max(inv.Total-inv.PaidAmount, 0)
}

// RemainingCredit is the overpaid part carried into the next period.
func (inv *Invoice) RemainingCredit() int64 {
	return max(inv.PaidAmount-inv.Total, 0)
}

// Payment is one recorded collection against an invoice. Payments are
// append-only; corrections happen outside this system.
type Payment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    int64
	PaidAt    time.Time
	Note      string
	CreatedAt time.Time
}

// Reading is a pair of meter counter values for one period.
type Reading struct {
	Old decimal.Decimal
	New decimal.Decimal
}

// BillableRoom is the roster row the generator works from: an occupied
// room joined with its location tariff and optional room type.
type BillableRoom struct {
	RoomID     uuid.UUID
	RoomCode   string
	LocationID uuid.UUID
	TenancyID  uuid.UUID

	PriceOverride      *int64 // room-level price, supersedes the type price
	TypePrice          *int64
	TypeDailyDeduction int64

	ElectricPrice int64 // per kWh
	WaterPrice    int64 // per m³
	GarbageFee    int64
	WifiFee       int64
	TVFee         int64
	LaundryFee    int64
}
