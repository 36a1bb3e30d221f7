package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/billing"
)

func TestAbsenceDeduction(t *testing.T) {
	type testCase struct {
		name       string
		rent       int64
		dailyRate  int64
		absentDays int
		periodDays int
		want       int64
		wantErr    bool
	}

	tests := []testCase{
		{name: "NoAbsence", rent: 2_000_000, dailyRate: 66_000, absentDays: 0, periodDays: 31, want: 0},
		{name: "TwoDays", rent: 2_000_000, dailyRate: 66_000, absentDays: 2, periodDays: 31, want: 132_000},
		{name: "CappedAtRent", rent: 100_000, dailyRate: 66_000, absentDays: 10, periodDays: 31, want: 100_000},
		{name: "WholePeriod", rent: 2_000_000, dailyRate: 66_000, absentDays: 31, periodDays: 31, want: 2_000_000},
		{name: "ZeroRate", rent: 2_000_000, dailyRate: 0, absentDays: 5, periodDays: 31, want: 0},
		{name: "NegativeDays", rent: 2_000_000, dailyRate: 66_000, absentDays: -1, periodDays: 31, wantErr: true},
		{name: "MoreDaysThanPeriod", rent: 2_000_000, dailyRate: 66_000, absentDays: 32, periodDays: 31, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.AbsenceDeduction(tt.rent, tt.dailyRate, tt.absentDays, tt.periodDays)

			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrInvalidAbsence)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
