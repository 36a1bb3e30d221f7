package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrRoomOccupied is returned when a move-in targets a room that
	// already has an active tenancy.
	ErrRoomOccupied = errors.New("room already has an active tenancy")

	// ErrTenancyEnded is returned when ending or moving a tenancy that
	// is no longer active.
	ErrTenancyEnded = errors.New("tenancy is not active")

	ErrInvalidPrice  = errors.New("price must not be negative")
	ErrInvalidDueDay = errors.New("payment due day must be between 1 and 31")
)

// Location is one rental site. It carries the per-unit utility prices
// and flat monthly fees applied to every room it owns.
type Location struct {
	ID         uuid.UUID
	Name       string
	Address    string
	OwnerName  string
	OwnerPhone string

	ElectricPrice int64 // per kWh
	WaterPrice    int64 // per m³
	GarbageFee    int64
	WifiFee       int64
	TVFee         int64
	LaundryFee    int64

	PaymentDueDay int // 1-31

	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// RoomType groups rooms of one location that share a monthly price and
// a per-absent-day deduction rate.
type RoomType struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	Code       string
	Name       string

	Price          int64
	DailyDeduction int64

	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// RoomStatus is derived from whether an active tenancy exists; it is
// never stored or set directly.
type RoomStatus string

const (
	RoomVacant   RoomStatus = "vacant"
	RoomOccupied RoomStatus = "occupied"
)

type Room struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	RoomTypeID *uuid.UUID
	Code       string

	// Price overrides the room type's price when set.
	Price *int64

	Status RoomStatus

	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Tenancy is one tenant's occupancy of one room. At most one tenancy
// per room may be active at a time.
type Tenancy struct {
	ID     uuid.UUID
	RoomID uuid.UUID

	FullName string
	Phone    string
	IDCard   string

	MoveInDate  time.Time
	MoveOutDate *time.Time
	Active      bool

	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
