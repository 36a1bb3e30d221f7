package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	// BillableRooms lists rooms with an active tenancy, joined with
	// their location tariff, optionally filtered to one location.
	BillableRooms(ctx context.Context, locationID *uuid.UUID) ([]*BillableRoom, error)

	// PeriodReadings returns the meter readings recorded for the room in
	// the period, keyed by meter kind. Meters without a reading for the
	// period are absent from the map.
	PeriodReadings(ctx context.Context, roomID uuid.UUID, period Period) (map[MeterKind]Reading, error)

	// PreviousInvoice returns the invoice for the given room, tenancy
	// and period, or nil when none exists.
	PreviousInvoice(ctx context.Context, roomID, tenancyID uuid.UUID, period Period) (*Invoice, error)

	// CreateInvoice persists a fully computed invoice in a single
	// insert. Returns ErrDuplicateInvoice when one already exists for
	// the same room and period.
	CreateInvoice(ctx context.Context, inv *Invoice) error

	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)

	// AddPayment appends a payment and updates the invoice's paid amount
	// and derived status in one serialized transaction.
	AddPayment(ctx context.Context, invoiceID uuid.UUID, amount int64, paidAt time.Time, note string) (*Invoice, error)

	// SettleInvoice records a payment of exactly the remaining debt.
	// Returns ErrAlreadyPaid when nothing remains.
	SettleInvoice(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time) (*Invoice, error)

	// CorrectAbsence recomputes the absence deduction and total from the
	// invoice's stored tariff. Returns ErrInvoicePaid when any payment
	// has been recorded.
	CorrectAbsence(ctx context.Context, invoiceID uuid.UUID, absentDays int) (*Invoice, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows ListInvoices. Nil fields are ignored.
type ListFilter struct {
	Period     *Period
	LocationID *uuid.UUID
	Status     *Status
}

// Skip reasons reported per room by Generate.
const (
	SkipAlreadyExists       = "already_exists"
	SkipMissingTariff       = "missing_tariff"
	SkipNegativeConsumption = "negative_consumption"
	SkipError               = "error"
)

type CreatedInvoice struct {
	InvoiceID uuid.UUID
	RoomID    uuid.UUID
	RoomCode  string
}

type SkippedRoom struct {
	RoomID   uuid.UUID
	RoomCode string
	Reason   string
	Detail   string
}

// Result is the complete report of one generation run: which rooms got
// an invoice and which were skipped, with the reason for each.
type Result struct {
	Period  Period
	Created []CreatedInvoice
	Skipped []SkippedRoom
}

// Generate produces one invoice per occupied room for the period,
// optionally scoped to a single location. Rooms are processed
// independently: a failure on one room is reported in the result and
// never aborts the rest of the batch. Re-running for the same period
// skips rooms that already have an invoice, so generation is idempotent.
func (s *Service) Generate(ctx context.Context, period Period, locationID *uuid.UUID) (*Result, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	rooms, err := s.repo.BillableRooms(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("listing billable rooms: %w", err)
	}

	result := &Result{Period: period}

	for _, room := range rooms {
		inv, err := s.generateOne(ctx, room, period)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRoom{
				RoomID:   room.RoomID,
				RoomCode: room.RoomCode,
				Reason:   skipReason(err),
				Detail:   err.Error(),
			})

			continue
		}

		result.Created = append(result.Created, CreatedInvoice{
			InvoiceID: inv.ID,
			RoomID:    room.RoomID,
			RoomCode:  room.RoomCode,
		})
	}

	return result, nil
}

func (s *Service) generateOne(ctx context.Context, room *BillableRoom, period Period) (*Invoice, error) {
	tariff, err := ResolveTariff(room)
	if err != nil {
		return nil, err
	}

	readings, err := s.repo.PeriodReadings(ctx, room.RoomID, period)
	if err != nil {
		return nil, fmt.Errorf("loading readings: %w", err)
	}

	inv := &Invoice{
		RoomID:         room.RoomID,
		RoomCode:       room.RoomCode,
		TenancyID:      room.TenancyID,
		Period:         period,
		RoomFee:        tariff.Rent,
		DailyDeduction: tariff.DailyDeduction,
		GarbageFee:     tariff.GarbageFee,
		WifiFee:        tariff.WifiFee,
		TVFee:          tariff.TVFee,
		LaundryFee:     tariff.LaundryFee,
		Status:         StatusUnpaid,
	}

	if r, ok := readings[MeterElectric]; ok {
		used, err := Consumption(r.Old, r.New)
		if err != nil {
			return nil, fmt.Errorf("electric meter: %w", err)
		}

		inv.ElectricFee = MeterFee(used, tariff.ElectricPrice)
		inv.ElectricMetered = true
	}

	if r, ok := readings[MeterWater]; ok {
		used, err := Consumption(r.Old, r.New)
		if err != nil {
			return nil, fmt.Errorf("water meter: %w", err)
		}

		inv.WaterFee = MeterFee(used, tariff.WaterPrice)
		inv.WaterMetered = true
	}

	prev, err := s.repo.PreviousInvoice(ctx, room.RoomID, room.TenancyID, period.Previous())
	if err != nil {
		return nil, fmt.Errorf("loading previous invoice: %w", err)
	}

	carry := CarryoverFrom(prev)
	inv.PreviousDebt = carry.Debt
	inv.PreviousCredit = carry.Credit

	inv.Total = inv.ComputeTotal()

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateInvoice):
		return SkipAlreadyExists
	case errors.Is(err, ErrMissingTariff):
		return SkipMissingTariff
	case errors.Is(err, ErrNegativeConsumption):
		return SkipNegativeConsumption
	default:
		return SkipError
	}
}

// RecordPayment appends a payment against the invoice. Overpayment is
// allowed; it becomes the next period's carryover credit.
func (s *Service) RecordPayment(ctx context.Context, invoiceID uuid.UUID, amount int64, note string) (*Invoice, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	return s.repo.AddPayment(ctx, invoiceID, amount, time.Now(), note)
}

// MarkFullyPaid records a payment of exactly the remaining debt.
func (s *Service) MarkFullyPaid(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error) {
	return s.repo.SettleInvoice(ctx, invoiceID, time.Now())
}

// CorrectAbsence sets the absent-day count on an invoice that has no
// payments yet and recomputes its deduction and total from the tariff
// snapshotted at generation time.
func (s *Service) CorrectAbsence(ctx context.Context, invoiceID uuid.UUID, absentDays int) (*Invoice, error) {
	if absentDays < 0 {
		return nil, fmt.Errorf("%w: %d days", ErrInvalidAbsence, absentDays)
	}

	return s.repo.CorrectAbsence(ctx, invoiceID, absentDays)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	if filter.Period != nil {
		if err := filter.Period.Validate(); err != nil {
			return nil, err
		}
	}

	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Payments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, invoiceID)
}
