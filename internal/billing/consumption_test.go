package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/billing"
)

func TestConsumption(t *testing.T) {
	type testCase struct {
		name    string
		old     string
		new     string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Normal", old: "100", new: "150", want: "50"},
		{name: "Zero", old: "100", new: "100", want: "0"},
		{name: "Fractional", old: "10.25", new: "13.75", want: "3.5"},
		{name: "Rollback", old: "100", new: "90", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, err := billing.Consumption(decimal.RequireFromString(tt.old), decimal.RequireFromString(tt.new))

			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrNegativeConsumption)
				return
			}

			require.NoError(t, err)
			assert.True(t, used.Equal(decimal.RequireFromString(tt.want)), "got %s", used)
		})
	}
}

func TestMeterFee(t *testing.T) {
	type testCase struct {
		name        string
		consumption string
		price       int64
		want        int64
	}

	tests := []testCase{
		{name: "Electric50kWh", consumption: "50", price: 3_500, want: 175_000},
		{name: "Water3m3", consumption: "3", price: 15_000, want: 45_000},
		{name: "FractionalRoundsToWholeUnit", consumption: "12.34", price: 3_500, want: 43_190},
		{name: "RoundsHalfUp", consumption: "0.5", price: 101, want: 51},
		{name: "ZeroConsumption", consumption: "0", price: 3_500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := billing.MeterFee(decimal.RequireFromString(tt.consumption), tt.price)
			assert.Equal(t, tt.want, fee)
		})
	}
}
