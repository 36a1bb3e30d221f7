package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoangvn/nhatro/internal/billing"
)

func TestPeriod_Previous(t *testing.T) {
	tests := []struct {
		name string
		in   billing.Period
		want billing.Period
	}{
		{name: "MidYear", in: billing.Period{Month: 7, Year: 2026}, want: billing.Period{Month: 6, Year: 2026}},
		{name: "YearBoundary", in: billing.Period{Month: 1, Year: 2026}, want: billing.Period{Month: 12, Year: 2025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Previous())
		})
	}
}

func TestPeriod_Days(t *testing.T) {
	tests := []struct {
		name string
		in   billing.Period
		want int
	}{
		{name: "January", in: billing.Period{Month: 1, Year: 2026}, want: 31},
		{name: "February", in: billing.Period{Month: 2, Year: 2026}, want: 28},
		{name: "LeapFebruary", in: billing.Period{Month: 2, Year: 2028}, want: 29},
		{name: "April", in: billing.Period{Month: 4, Year: 2026}, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Days())
		})
	}
}

func TestPeriod_Validate(t *testing.T) {
	assert.NoError(t, billing.Period{Month: 12, Year: 2026}.Validate())
	assert.ErrorIs(t, billing.Period{Month: 0, Year: 2026}.Validate(), billing.ErrInvalidPeriod)
	assert.ErrorIs(t, billing.Period{Month: 13, Year: 2026}.Validate(), billing.ErrInvalidPeriod)
	assert.ErrorIs(t, billing.Period{Month: 6, Year: 1890}.Validate(), billing.ErrInvalidPeriod)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name  string
		paid  int64
		total int64
		want  billing.Status
	}{
		{name: "Unpaid", paid: 0, total: 1_000_000, want: billing.StatusUnpaid},
		{name: "Partial", paid: 500_000, total: 1_000_000, want: billing.StatusPartial},
		{name: "Exact", paid: 1_000_000, total: 1_000_000, want: billing.StatusPaid},
		{name: "Overpaid", paid: 1_200_000, total: 1_000_000, want: billing.StatusPaid},
		{name: "ZeroTotal", paid: 0, total: 0, want: billing.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.StatusFor(tt.paid, tt.total))
		})
	}
}

func TestInvoice_ComputeTotal(t *testing.T) {
	inv := &billing.Invoice{
		RoomFee:         2_000_000,
		AbsentDeduction: 132_000,
		ElectricFee:     175_000,
		WaterFee:        45_000,
		GarbageFee:      30_000,
		PreviousDebt:    100_000,
		PreviousCredit:  50_000,
	}

	assert.Equal(t, int64(2_168_000), inv.ComputeTotal())
}

func TestInvoice_ComputeTotal_FlooredAtZero(t *testing.T) {
	inv := &billing.Invoice{
		RoomFee:        500_000,
		PreviousCredit: 900_000,
	}

	assert.Equal(t, int64(0), inv.ComputeTotal())
}

func TestInvoice_Remaining(t *testing.T) {
	inv := &billing.Invoice{Total: 2_250_000, PaidAmount: 2_500_000}
	assert.Equal(t, int64(0), inv.RemainingDebt())
	assert.Equal(t, int64(250_000), inv.RemainingCredit())

	inv = &billing.Invoice{Total: 2_250_000, PaidAmount: 1_000_000}
	assert.Equal(t, int64(1_250_000), inv.RemainingDebt())
	assert.Equal(t, int64(0), inv.RemainingCredit())
}
