package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoangvn/nhatro/internal/billing"
)

func TestCarryoverFrom(t *testing.T) {
	type testCase struct {
		name       string
		prev       *billing.Invoice
		wantDebt   int64
		wantCredit int64
	}

	tests := []testCase{
		{
			name: "NoPriorInvoice",
			prev: nil,
		},
		{
			name:     "UnderpaidBecomesDebt",
			prev:     &billing.Invoice{Total: 2_250_000, PaidAmount: 1_000_000},
			wantDebt: 1_250_000,
		},
		{
			name:       "OverpaidBecomesCredit",
			prev:       &billing.Invoice{Total: 2_250_000, PaidAmount: 2_500_000},
			wantCredit: 250_000,
		},
		{
			name: "ExactlySettled",
			prev: &billing.Invoice{Total: 2_250_000, PaidAmount: 2_250_000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carry := billing.CarryoverFrom(tt.prev)
			assert.Equal(t, tt.wantDebt, carry.Debt)
			assert.Equal(t, tt.wantCredit, carry.Credit)
		})
	}
}
