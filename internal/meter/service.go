package meter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// CreateMeter inserts a meter. Returns ErrMeterExists when the room
	// already has one of the same kind.
	CreateMeter(ctx context.Context, m *Meter) error
	GetMeter(ctx context.Context, id uuid.UUID) (*Meter, error)
	ListMeters(ctx context.Context, filter MeterFilter) ([]*Meter, error)
	// FindRoomMeter locates a meter by room code and kind; used by the
	// reading importer, which addresses rooms the way spreadsheets do.
	FindRoomMeter(ctx context.Context, roomCode string, kind Kind) (*Meter, error)

	// CreateReading inserts a reading. Returns ErrDuplicateReading when
	// one exists for the meter and period.
	CreateReading(ctx context.Context, r *Reading) error
	ListReadings(ctx context.Context, filter ReadingFilter) ([]*Reading, error)
	// LatestReading returns the newest reading for the meter, or nil.
	LatestReading(ctx context.Context, meterID uuid.UUID) (*Reading, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type MeterFilter struct {
	RoomID *uuid.UUID
	Kind   *Kind
}

type ReadingFilter struct {
	MeterID *uuid.UUID
	RoomID  *uuid.UUID
	Month   *int
	Year    *int
}

func (s *Service) AddMeter(ctx context.Context, roomID uuid.UUID, kind Kind, code, notes string) (*Meter, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	m := &Meter{
		RoomID: roomID,
		Kind:   kind,
		Code:   code,
		Notes:  notes,
	}
	if err := s.repo.CreateMeter(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) ListMeters(ctx context.Context, filter MeterFilter) ([]*Meter, error) {
	return s.repo.ListMeters(ctx, filter)
}

// ReadingParams describes one reading entry. Old is optional: when nil
// it continues from the previous period's new value, or zero for a
// meter's first reading.
type ReadingParams struct {
	MeterID uuid.UUID
	Month   int
	Year    int
	Old     *decimal.Decimal
	New     decimal.Decimal
}

func (p ReadingParams) validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}

	if p.New.IsNegative() || (p.Old != nil && p.Old.IsNegative()) {
		return ErrNegativeReading
	}

	return nil
}

// RecordReading enters one meter reading for a period. A new value
// below the old one is rejected here so the billing run does not trip
// over it a month later.
func (s *Service) RecordReading(ctx context.Context, params ReadingParams) (*Reading, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	old := decimal.Zero

	if params.Old != nil {
		old = *params.Old
	} else {
		prev, err := s.repo.LatestReading(ctx, params.MeterID)
		if err != nil {
			return nil, fmt.Errorf("loading latest reading: %w", err)
		}

		if prev != nil {
			old = prev.New
		}
	}

	consumption := params.New.Sub(old)
	if consumption.IsNegative() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrReadingOrder, old, params.New)
	}

	r := &Reading{
		MeterID:     params.MeterID,
		Month:       params.Month,
		Year:        params.Year,
		Old:         old,
		New:         params.New,
		Consumption: consumption,
	}
	if err := s.repo.CreateReading(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

type BatchItemResult struct {
	MeterID uuid.UUID
	Reading *Reading
	Err     error
}

// RecordBatch enters a page of readings, one meter at a time. Items are
// independent: a bad row is reported in its slot and the rest still go
// in, mirroring how invoice generation treats per-room failures.
func (s *Service) RecordBatch(ctx context.Context, items []ReadingParams) []BatchItemResult {
	results := make([]BatchItemResult, len(items))

	for i, item := range items {
		r, err := s.RecordReading(ctx, item)
		results[i] = BatchItemResult{MeterID: item.MeterID, Reading: r, Err: err}
	}

	return results
}

func (s *Service) ListReadings(ctx context.Context, filter ReadingFilter) ([]*Reading, error) {
	return s.repo.ListReadings(ctx, filter)
}

// FindRoomMeter resolves a meter from a room code, for callers that
// identify rooms by their human-facing code.
func (s *Service) FindRoomMeter(ctx context.Context, roomCode string, kind Kind) (*Meter, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	return s.repo.FindRoomMeter(ctx, roomCode, kind)
}
