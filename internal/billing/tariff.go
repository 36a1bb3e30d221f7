package billing

import "fmt"

// Tariff is the full set of prices applicable to a room for a period:
// base rent, per-unit utility prices and the location's fixed fees.
type Tariff struct {
	Rent           int64
	DailyDeduction int64
	ElectricPrice  int64
	WaterPrice     int64
	GarbageFee     int64
	WifiFee        int64
	TVFee          int64
	LaundryFee     int64
}

// ResolveTariff resolves the effective tariff for a billable room.
// The rent is the room's own price override when set, otherwise the
// room type's price. A room with neither cannot be billed.
//
// Utility prices and fixed fees come from the room's location as they
// are now; there is no historical price versioning. The resolved values
// are snapshotted onto the invoice so a later price change never
// rewrites an existing bill.
func ResolveTariff(room *BillableRoom) (Tariff, error) {
	t := Tariff{
		DailyDeduction: room.TypeDailyDeduction,
		ElectricPrice:  room.ElectricPrice,
		WaterPrice:     room.WaterPrice,
		GarbageFee:     room.GarbageFee,
		WifiFee:        room.WifiFee,
		TVFee:          room.TVFee,
		LaundryFee:     room.LaundryFee,
	}

	switch {
	case room.PriceOverride != nil:
		t.Rent = *room.PriceOverride
	case room.TypePrice != nil:
		t.Rent = *room.TypePrice
	default:
		return Tariff{}, fmt.Errorf("room %s: %w", room.RoomCode, ErrMissingTariff)
	}

	return t, nil
}
