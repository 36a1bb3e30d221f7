package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/expense"
)

type fakeRepo struct {
	items map[uuid.UUID]*expense.Expense
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*expense.Expense)}
}

func (f *fakeRepo) Create(ctx context.Context, e *expense.Expense) error {
	e.ID = uuid.New()
	f.items[e.ID] = e

	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, expense.ErrNotFound
	}

	return e, nil
}

func (f *fakeRepo) Update(ctx context.Context, e *expense.Expense) error {
	if _, ok := f.items[e.ID]; !ok {
		return expense.ErrNotFound
	}

	f.items[e.ID] = e

	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return expense.ErrNotFound
	}

	delete(f.items, id)

	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter expense.Filter) ([]*expense.Expense, error) {
	var out []*expense.Expense
	for _, e := range f.items {
		out = append(out, e)
	}

	return out, nil
}

func (f *fakeRepo) MonthlyTotal(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error) {
	var total int64

	for _, e := range f.items {
		if e.Month != month || e.Year != year {
			continue
		}

		// Shared rows count only in the unscoped total.
		if locationID != nil && (e.LocationID == nil || *e.LocationID != *locationID) {
			continue
		}

		total += e.Amount
	}

	return total, nil
}

func TestService_Create(t *testing.T) {
	locationID := uuid.New()

	tests := []struct {
		name    string
		params  expense.Params
		wantErr error
	}{
		{
			name: "Valid",
			params: expense.Params{
				LocationID:  &locationID,
				Month:       9,
				Year:        2026,
				Category:    "repair",
				Description: "thay bóng đèn hành lang",
				Amount:      120_000,
			},
		},
		{
			name: "SharedAcrossLocations",
			params: expense.Params{
				Month:       9,
				Year:        2026,
				Category:    "utility",
				Description: "internet dùng chung",
				Amount:      400_000,
			},
		},
		{
			name:    "ZeroAmount",
			params:  expense.Params{LocationID: &locationID, Month: 9, Year: 2026, Amount: 0},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			params:  expense.Params{LocationID: &locationID, Month: 9, Year: 2026, Amount: -5000},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name:    "BadMonth",
			params:  expense.Params{LocationID: &locationID, Month: 0, Year: 2026, Amount: 1000},
			wantErr: expense.ErrInvalidPeriod,
		},
		{
			name:    "UnknownCategory",
			params:  expense.Params{LocationID: &locationID, Month: 9, Year: 2026, Category: "tiệc", Amount: 1000},
			wantErr: expense.ErrInvalidCategory,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := expense.NewService(newFakeRepo())

			e, err := svc.Create(context.Background(), test.params)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, e.ID)
			assert.False(t, e.SpentAt.IsZero())
			assert.Equal(t, test.params.LocationID, e.LocationID)
		})
	}
}

func TestService_Create_EmptyCategoryDefaultsToOther(t *testing.T) {
	svc := expense.NewService(newFakeRepo())

	e, err := svc.Create(context.Background(), expense.Params{
		Month:  9,
		Year:   2026,
		Amount: 50_000,
	})
	require.NoError(t, err)
	assert.Equal(t, expense.CategoryOther, e.Category)
	assert.Nil(t, e.LocationID)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := expense.NewService(newFakeRepo())

	_, err := svc.Update(context.Background(), uuid.New(), expense.Params{
		Month:  9,
		Year:   2026,
		Amount: 1000,
	})
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestService_Update_CanClearLocation(t *testing.T) {
	locationID := uuid.New()

	svc := expense.NewService(newFakeRepo())

	e, err := svc.Create(context.Background(), expense.Params{
		LocationID: &locationID,
		Month:      9,
		Year:       2026,
		Amount:     80_000,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), e.ID, expense.Params{
		Month:  9,
		Year:   2026,
		Amount: 80_000,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.LocationID)
}

func TestService_MonthlyTotal(t *testing.T) {
	locationA := uuid.New()
	locationB := uuid.New()

	repo := newFakeRepo()
	svc := expense.NewService(repo)

	spend := func(loc *uuid.UUID, month int, amount int64) {
		_, err := svc.Create(context.Background(), expense.Params{
			LocationID: loc,
			Month:      month,
			Year:       2026,
			Category:   "utility",
			Amount:     amount,
			SpentAt:    time.Date(2026, time.Month(month), 5, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	spend(&locationA, 9, 300_000)
	spend(&locationA, 9, 150_000)
	spend(&locationB, 9, 500_000)
	spend(nil, 9, 200_000)
	spend(&locationA, 8, 999_000)

	// Location-scoped totals exclude shared expenses.
	total, err := svc.MonthlyTotal(context.Background(), &locationA, 9, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(450_000), total)

	// The unscoped total includes them.
	total, err = svc.MonthlyTotal(context.Background(), nil, 9, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(1_150_000), total)

	_, err = svc.MonthlyTotal(context.Background(), nil, 13, 2026)
	assert.ErrorIs(t, err, expense.ErrInvalidPeriod)
}
