package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/property"
)

type locationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	OwnerName     string     `json:"owner_name"`
	OwnerPhone    string     `json:"owner_phone"`
	ElectricPrice int64      `json:"electric_price"`
	WaterPrice    int64      `json:"water_price"`
	GarbageFee    int64      `json:"garbage_fee"`
	WifiFee       int64      `json:"wifi_fee"`
	TVFee         int64      `json:"tv_fee"`
	LaundryFee    int64      `json:"laundry_fee"`
	PaymentDueDay int        `json:"payment_due_day"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toLocationResponse(loc *property.Location) locationResponse {
	return locationResponse{
		ID:            loc.ID,
		Name:          loc.Name,
		Address:       loc.Address,
		OwnerName:     loc.OwnerName,
		OwnerPhone:    loc.OwnerPhone,
		ElectricPrice: loc.ElectricPrice,
		WaterPrice:    loc.WaterPrice,
		GarbageFee:    loc.GarbageFee,
		WifiFee:       loc.WifiFee,
		TVFee:         loc.TVFee,
		LaundryFee:    loc.LaundryFee,
		PaymentDueDay: loc.PaymentDueDay,
		Notes:         loc.Notes,
		CreatedAt:     loc.CreatedAt,
		UpdatedAt:     loc.UpdatedAt,
	}
}

type roomTypeResponse struct {
	ID             uuid.UUID  `json:"id"`
	LocationID     uuid.UUID  `json:"location_id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Price          int64      `json:"price"`
	DailyDeduction int64      `json:"daily_deduction"`
	Description    string     `json:"description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func toRoomTypeResponse(rt *property.RoomType) roomTypeResponse {
	return roomTypeResponse{
		ID:             rt.ID,
		LocationID:     rt.LocationID,
		Code:           rt.Code,
		Name:           rt.Name,
		Price:          rt.Price,
		DailyDeduction: rt.DailyDeduction,
		Description:    rt.Description,
		CreatedAt:      rt.CreatedAt,
		UpdatedAt:      rt.UpdatedAt,
	}
}

type roomResponse struct {
	ID         uuid.UUID           `json:"id"`
	LocationID uuid.UUID           `json:"location_id"`
	RoomTypeID *uuid.UUID          `json:"room_type_id,omitempty"`
	Code       string              `json:"code"`
	Price      *int64              `json:"price,omitempty"`
	Status     property.RoomStatus `json:"status"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty"`
}

func toRoomResponse(room *property.Room) roomResponse {
	return roomResponse{
		ID:         room.ID,
		LocationID: room.LocationID,
		RoomTypeID: room.RoomTypeID,
		Code:       room.Code,
		Price:      room.Price,
		Status:     room.Status,
		Notes:      room.Notes,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

type tenancyResponse struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"room_id"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	IDCard      string     `json:"id_card,omitempty"`
	MoveInDate  time.Time  `json:"move_in_date"`
	MoveOutDate *time.Time `json:"move_out_date,omitempty"`
	Active      bool       `json:"active"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toTenancyResponse(tn *property.Tenancy) tenancyResponse {
	return tenancyResponse{
		ID:          tn.ID,
		RoomID:      tn.RoomID,
		FullName:    tn.FullName,
		Phone:       tn.Phone,
		IDCard:      tn.IDCard,
		MoveInDate:  tn.MoveInDate,
		MoveOutDate: tn.MoveOutDate,
		Active:      tn.Active,
		Notes:       tn.Notes,
		CreatedAt:   tn.CreatedAt,
		UpdatedAt:   tn.UpdatedAt,
	}
}
