package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateLocation(ctx context.Context, loc *Location) error
	GetLocation(ctx context.Context, id uuid.UUID) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)
	UpdateLocation(ctx context.Context, loc *Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateRoomType(ctx context.Context, rt *RoomType) error
	ListRoomTypes(ctx context.Context, locationID uuid.UUID) ([]*RoomType, error)
	UpdateRoomType(ctx context.Context, rt *RoomType) error
	DeleteRoomType(ctx context.Context, id uuid.UUID) error

	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]*Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	// CreateTenancy inserts an active tenancy. Returns ErrRoomOccupied
	// when the room already has one; uniqueness is enforced by the
	// store, not by a read-then-write check.
	CreateTenancy(ctx context.Context, t *Tenancy) error
	GetTenancy(ctx context.Context, id uuid.UUID) (*Tenancy, error)
	ListTenancies(ctx context.Context, filter TenancyFilter) ([]*Tenancy, error)
	// EndTenancy deactivates the tenancy and stamps the move-out date.
	EndTenancy(ctx context.Context, id uuid.UUID, moveOut time.Time) (*Tenancy, error)
	// MoveTenancy reassigns an active tenancy to a vacant room.
	MoveTenancy(ctx context.Context, id, newRoomID uuid.UUID) (*Tenancy, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RoomFilter struct {
	LocationID *uuid.UUID
	Status     *RoomStatus
}

type TenancyFilter struct {
	RoomID *uuid.UUID
	Active *bool
}

type LocationParams struct {
	Name          string
	Address       string
	OwnerName     string
	OwnerPhone    string
	ElectricPrice int64
	WaterPrice    int64
	GarbageFee    int64
	WifiFee       int64
	TVFee         int64
	LaundryFee    int64
	PaymentDueDay int
	Notes         string
}

func (p LocationParams) validate() error {
	if p.PaymentDueDay < 1 || p.PaymentDueDay > 31 {
		return fmt.Errorf("%w: %d", ErrInvalidDueDay, p.PaymentDueDay)
	}

	for _, v := range []int64{p.ElectricPrice, p.WaterPrice, p.GarbageFee, p.WifiFee, p.TVFee, p.LaundryFee} {
		if v < 0 {
			return ErrInvalidPrice
		}
	}

	return nil
}

func (s *Service) CreateLocation(ctx context.Context, params LocationParams) (*Location, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	loc := &Location{
		Name:          params.Name,
		Address:       params.Address,
		OwnerName:     params.OwnerName,
		OwnerPhone:    params.OwnerPhone,
		ElectricPrice: params.ElectricPrice,
		WaterPrice:    params.WaterPrice,
		GarbageFee:    params.GarbageFee,
		WifiFee:       params.WifiFee,
		TVFee:         params.TVFee,
		LaundryFee:    params.LaundryFee,
		PaymentDueDay: params.PaymentDueDay,
		Notes:         params.Notes,
	}
	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}

	return loc, nil
}

func (s *Service) GetLocation(ctx context.Context, id uuid.UUID) (*Location, error) {
	return s.repo.GetLocation(ctx, id)
}

func (s *Service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *Service) UpdateLocation(ctx context.Context, id uuid.UUID, params LocationParams) (*Location, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	loc, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	loc.Name = params.Name
	loc.Address = params.Address
	loc.OwnerName = params.OwnerName
	loc.OwnerPhone = params.OwnerPhone
	loc.ElectricPrice = params.ElectricPrice
	loc.WaterPrice = params.WaterPrice
	loc.GarbageFee = params.GarbageFee
	loc.WifiFee = params.WifiFee
	loc.TVFee = params.TVFee
	loc.LaundryFee = params.LaundryFee
	loc.PaymentDueDay = params.PaymentDueDay
	loc.Notes = params.Notes

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, err
	}

	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteLocation(ctx, id)
}

type RoomTypeParams struct {
	LocationID     uuid.UUID
	Code           string
	Name           string
	Price          int64
	DailyDeduction int64
	Description    string
}

func (p RoomTypeParams) validate() error {
	if p.Price < 0 || p.DailyDeduction < 0 {
		return ErrInvalidPrice
	}

	return nil
}

func (s *Service) CreateRoomType(ctx context.Context, params RoomTypeParams) (*RoomType, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	rt := &RoomType{
		LocationID:     params.LocationID,
		Code:           params.Code,
		Name:           params.Name,
		Price:          params.Price,
		DailyDeduction: params.DailyDeduction,
		Description:    params.Description,
	}
	if err := s.repo.CreateRoomType(ctx, rt); err != nil {
		return nil, err
	}

	return rt, nil
}

func (s *Service) ListRoomTypes(ctx context.Context, locationID uuid.UUID) ([]*RoomType, error) {
	return s.repo.ListRoomTypes(ctx, locationID)
}

func (s *Service) UpdateRoomType(ctx context.Context, rt *RoomType) error {
	if rt.Price < 0 || rt.DailyDeduction < 0 {
		return ErrInvalidPrice
	}

	return s.repo.UpdateRoomType(ctx, rt)
}

func (s *Service) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRoomType(ctx, id)
}

type RoomParams struct {
	LocationID uuid.UUID
	RoomTypeID *uuid.UUID
	Code       string
	Price      *int64
	Notes      string
}

func (s *Service) CreateRoom(ctx context.Context, params RoomParams) (*Room, error) {
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}

	room := &Room{
		LocationID: params.LocationID,
		RoomTypeID: params.RoomTypeID,
		Code:       params.Code,
		Price:      params.Price,
		Notes:      params.Notes,
		Status:     RoomVacant,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, filter RoomFilter) ([]*Room, error) {
	return s.repo.ListRooms(ctx, filter)
}

func (s *Service) UpdateRoom(ctx context.Context, room *Room) error {
	if room.Price != nil && *room.Price < 0 {
		return ErrInvalidPrice
	}

	return s.repo.UpdateRoom(ctx, room)
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRoom(ctx, id)
}

type MoveInParams struct {
	RoomID     uuid.UUID
	FullName   string
	Phone      string
	IDCard     string
	MoveInDate time.Time
	Notes      string
}

// MoveIn starts a tenancy in the room. Occupancy is derived from the
// tenancy itself: the insert fails with ErrRoomOccupied when another
// active tenancy exists, so two concurrent move-ins cannot both win.
func (s *Service) MoveIn(ctx context.Context, params MoveInParams) (*Tenancy, error) {
	if _, err := s.repo.GetRoom(ctx, params.RoomID); err != nil {
		return nil, err
	}

	t := &Tenancy{
		RoomID:     params.RoomID,
		FullName:   params.FullName,
		Phone:      params.Phone,
		IDCard:     params.IDCard,
		MoveInDate: params.MoveInDate,
		Active:     true,
		Notes:      params.Notes,
	}
	if err := s.repo.CreateTenancy(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// MoveOut ends the tenancy; the room becomes vacant by derivation.
func (s *Service) MoveOut(ctx context.Context, tenancyID uuid.UUID, moveOut time.Time) (*Tenancy, error) {
	return s.repo.EndTenancy(ctx, tenancyID, moveOut)
}

// Move reassigns an active tenancy to another room. The tenancy keeps
// its identity, so billing carryover does not follow it into the new
// room's invoice history.
func (s *Service) Move(ctx context.Context, tenancyID, newRoomID uuid.UUID) (*Tenancy, error) {
	if _, err := s.repo.GetRoom(ctx, newRoomID); err != nil {
		return nil, err
	}

	return s.repo.MoveTenancy(ctx, tenancyID, newRoomID)
}

func (s *Service) GetTenancy(ctx context.Context, id uuid.UUID) (*Tenancy, error) {
	return s.repo.GetTenancy(ctx, id)
}

func (s *Service) ListTenancies(ctx context.Context, filter TenancyFilter) ([]*Tenancy, error) {
	return s.repo.ListTenancies(ctx, filter)
}
