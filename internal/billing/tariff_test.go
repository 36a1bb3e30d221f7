package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/billing"
)

func TestResolveTariff(t *testing.T) {
	override := int64(2_500_000)
	typePrice := int64(2_000_000)

	type testCase struct {
		name     string
		room     billing.BillableRoom
		wantRent int64
		wantErr  error
	}

	tests := []testCase{
		{
			name: "OverrideSupersedesTypePrice",
			room: billing.BillableRoom{
				PriceOverride: &override,
				TypePrice:     &typePrice,
			},
			wantRent: 2_500_000,
		},
		{
			name: "TypePriceFallback",
			room: billing.BillableRoom{
				TypePrice: &typePrice,
			},
			wantRent: 2_000_000,
		},
		{
			name:    "NoPriceAnywhere",
			room:    billing.BillableRoom{RoomCode: "A101"},
			wantErr: billing.ErrMissingTariff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tariff, err := billing.ResolveTariff(&tt.room)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRent, tariff.Rent)
		})
	}
}

func TestResolveTariff_CarriesLocationPrices(t *testing.T) {
	price := int64(2_000_000)

	room := billing.BillableRoom{
		TypePrice:          &price,
		TypeDailyDeduction: 66_000,
		ElectricPrice:      3_500,
		WaterPrice:         15_000,
		GarbageFee:         30_000,
		WifiFee:            100_000,
	}

	tariff, err := billing.ResolveTariff(&room)
	require.NoError(t, err)

	assert.Equal(t, int64(66_000), tariff.DailyDeduction)
	assert.Equal(t, int64(3_500), tariff.ElectricPrice)
	assert.Equal(t, int64(15_000), tariff.WaterPrice)
	assert.Equal(t, int64(30_000), tariff.GarbageFee)
	assert.Equal(t, int64(100_000), tariff.WifiFee)
	assert.Zero(t, tariff.TVFee)
	assert.Zero(t, tariff.LaundryFee)
}
