package report_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/report"
)

type fakeRepo struct {
	totals   *report.Monthly
	expenses int64
	unpaid   []report.UnpaidInvoice
}

func (f *fakeRepo) Dashboard(ctx context.Context, month, year int) (*report.Dashboard, error) {
	return &report.Dashboard{Month: month, Year: year}, nil
}

func (f *fakeRepo) MonthlyTotals(ctx context.Context, locationID *uuid.UUID, month, year int) (*report.Monthly, error) {
	m := *f.totals
	m.Month = month
	m.Year = year
	m.LocationID = locationID

	return &m, nil
}

func (f *fakeRepo) UnpaidInvoices(ctx context.Context, locationID *uuid.UUID, month, year int) ([]report.UnpaidInvoice, error) {
	return f.unpaid, nil
}

func (f *fakeRepo) MonthlyExpenses(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error) {
	return f.expenses, nil
}

func TestService_Monthly(t *testing.T) {
	t.Run("NetIsCollectedMinusExpenses", func(t *testing.T) {
		svc := report.NewService(&fakeRepo{
			totals:   &report.Monthly{Billed: 10_000_000, Collected: 8_500_000, InvoiceCount: 5, PaidCount: 3},
			expenses: 1_200_000,
			unpaid: []report.UnpaidInvoice{
				{RoomCode: "A101", Total: 2_000_000, PaidAmount: 500_000, Remaining: 1_500_000},
			},
		})

		m, err := svc.Monthly(context.Background(), nil, 9, 2026)
		require.NoError(t, err)

		assert.Equal(t, int64(8_500_000), m.Collected)
		assert.Equal(t, int64(1_500_000), m.Outstanding)
		assert.Equal(t, int64(7_300_000), m.Net)
		assert.Len(t, m.Unpaid, 1)
	})

	t.Run("OvercollectionFloorsOutstanding", func(t *testing.T) {
		svc := report.NewService(&fakeRepo{
			totals: &report.Monthly{Billed: 1_000_000, Collected: 1_200_000},
		})

		m, err := svc.Monthly(context.Background(), nil, 9, 2026)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Outstanding)
		assert.Equal(t, int64(1_200_000), m.Net)
	})

	t.Run("BadMonth", func(t *testing.T) {
		svc := report.NewService(&fakeRepo{totals: &report.Monthly{}})

		_, err := svc.Monthly(context.Background(), nil, 0, 2026)
		assert.ErrorIs(t, err, report.ErrInvalidPeriod)
	})
}

func TestService_Dashboard_BadMonth(t *testing.T) {
	svc := report.NewService(&fakeRepo{})

	_, err := svc.Dashboard(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}
