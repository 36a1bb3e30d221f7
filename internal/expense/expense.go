package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("expense amount must be positive")
	ErrInvalidPeriod   = errors.New("invalid expense period")
	ErrInvalidCategory = errors.New("invalid expense category")
)

const (
	CategoryRepair      = "repair"
	CategoryUtility     = "utility"
	CategoryMaintenance = "maintenance"
	CategoryOther       = "other"
)

// Expense is an operating cost booked for a period: repairs, shared
// utilities, cleaning, anything the rent has to cover. A nil LocationID
// means the cost is shared across all locations rather than booked
// against one. Amounts are VND, whole units.
type Expense struct {
	ID           uuid.UUID
	LocationID   *uuid.UUID
	LocationName string
	Month        int
	Year         int
	Category     string
	Description  string
	Amount       int64
	SpentAt      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
