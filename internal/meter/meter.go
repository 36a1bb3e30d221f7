package meter

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("meter not found")

	// ErrMeterExists is returned when a room already has a meter of the
	// same kind.
	ErrMeterExists = errors.New("room already has a meter of this kind")

	// ErrDuplicateReading is returned when a reading for the meter and
	// period was already entered.
	ErrDuplicateReading = errors.New("reading already recorded for period")

	// ErrReadingOrder is returned when the new counter value is below
	// the old one.
	ErrReadingOrder = errors.New("new reading must not be below old reading")

	ErrNegativeReading = errors.New("readings must not be negative")
	ErrInvalidPeriod   = errors.New("invalid reading period")
)

// Kind of utility a meter counts. Stored values match the billing
// engine's meter kinds.
type Kind string

const (
	KindElectric Kind = "electric"
	KindWater    Kind = "water"
)

func (k Kind) Validate() error {
	switch k {
	case KindElectric, KindWater:
		return nil
	default:
		return fmt.Errorf("unknown meter kind %q", k)
	}
}

type Meter struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Kind   Kind
	Code   string
	Notes  string

	// LatestReading is the newest counter value on record, if any.
	LatestReading *decimal.Decimal

	CreatedAt time.Time
}

// Reading is one period's counter pair for a meter. The old value
// should continue where the previous period left off; entry defaults it
// to exactly that.
type Reading struct {
	ID      uuid.UUID
	MeterID uuid.UUID
	Month   int
	Year    int

	Old         decimal.Decimal
	New         decimal.Decimal
	Consumption decimal.Decimal

	CreatedAt time.Time
	UpdatedAt *time.Time
}
