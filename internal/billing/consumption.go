package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Consumption computes the metered usage between two counter values.
// A negative result means the meter rolled back or a reading was
// mistyped; that is a data error the operator must resolve, so it is
// surfaced instead of being clamped to zero.
func Consumption(oldReading, newReading decimal.Decimal) (decimal.Decimal, error) {
	used := newReading.Sub(oldReading)
	if used.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s -> %s", ErrNegativeConsumption, oldReading, newReading)
	}

	return used, nil
}

// MeterFee prices a consumption at the per-unit tariff, rounded to the
// nearest whole currency unit. Sub-unit amounts are not modeled.
func MeterFee(consumption decimal.Decimal, unitPrice int64) int64 {
	return consumption.Mul(decimal.NewFromInt(unitPrice)).Round(0).IntPart()
}
