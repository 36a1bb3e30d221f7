package meter_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/meter"
)

type fakeRepo struct {
	latest   map[uuid.UUID]*meter.Reading
	created  []*meter.Reading
	existing map[uuid.UUID]map[string]bool // meterID -> "month/year"
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		latest:   make(map[uuid.UUID]*meter.Reading),
		existing: make(map[uuid.UUID]map[string]bool),
	}
}

func (f *fakeRepo) CreateMeter(ctx context.Context, m *meter.Meter) error { return nil }

func (f *fakeRepo) GetMeter(ctx context.Context, id uuid.UUID) (*meter.Meter, error) {
	return nil, meter.ErrNotFound
}

func (f *fakeRepo) ListMeters(ctx context.Context, filter meter.MeterFilter) ([]*meter.Meter, error) {
	return nil, nil
}

func (f *fakeRepo) FindRoomMeter(ctx context.Context, roomCode string, kind meter.Kind) (*meter.Meter, error) {
	return nil, meter.ErrNotFound
}

func (f *fakeRepo) CreateReading(ctx context.Context, r *meter.Reading) error {
	key := fmt.Sprintf("%d/%d", r.Month, r.Year)
	if f.existing[r.MeterID][key] {
		return meter.ErrDuplicateReading
	}

	if f.existing[r.MeterID] == nil {
		f.existing[r.MeterID] = make(map[string]bool)
	}

	f.existing[r.MeterID][key] = true
	r.ID = uuid.New()
	f.created = append(f.created, r)
	f.latest[r.MeterID] = r

	return nil
}

func (f *fakeRepo) ListReadings(ctx context.Context, filter meter.ReadingFilter) ([]*meter.Reading, error) {
	return f.created, nil
}

func (f *fakeRepo) LatestReading(ctx context.Context, meterID uuid.UUID) (*meter.Reading, error) {
	return f.latest[meterID], nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_RecordReading(t *testing.T) {
	meterID := uuid.New()

	t.Run("ExplicitOld", func(t *testing.T) {
		svc := meter.NewService(newFakeRepo())

		old := dec("100")
		r, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   9,
			Year:    2026,
			Old:     &old,
			New:     dec("150"),
		})

		require.NoError(t, err)
		assert.True(t, r.Consumption.Equal(dec("50")))
	})

	t.Run("OldDefaultsToPreviousNew", func(t *testing.T) {
		repo := newFakeRepo()
		repo.latest[meterID] = &meter.Reading{MeterID: meterID, New: dec("150")}

		svc := meter.NewService(repo)
		r, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   10,
			Year:    2026,
			New:     dec("180"),
		})

		require.NoError(t, err)
		assert.True(t, r.Old.Equal(dec("150")))
		assert.True(t, r.Consumption.Equal(dec("30")))
	})

	t.Run("FirstReadingStartsAtZero", func(t *testing.T) {
		svc := meter.NewService(newFakeRepo())

		r, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   9,
			Year:    2026,
			New:     dec("42"),
		})

		require.NoError(t, err)
		assert.True(t, r.Old.IsZero())
		assert.True(t, r.Consumption.Equal(dec("42")))
	})

	t.Run("RollbackRejected", func(t *testing.T) {
		svc := meter.NewService(newFakeRepo())

		old := dec("100")
		_, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   9,
			Year:    2026,
			Old:     &old,
			New:     dec("90"),
		})
		assert.ErrorIs(t, err, meter.ErrReadingOrder)
	})

	t.Run("BadMonthRejected", func(t *testing.T) {
		svc := meter.NewService(newFakeRepo())

		_, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   13,
			Year:    2026,
			New:     dec("1"),
		})
		assert.ErrorIs(t, err, meter.ErrInvalidPeriod)
	})

	t.Run("NegativeReadingRejected", func(t *testing.T) {
		svc := meter.NewService(newFakeRepo())

		_, err := svc.RecordReading(context.Background(), meter.ReadingParams{
			MeterID: meterID,
			Month:   9,
			Year:    2026,
			New:     dec("-1"),
		})
		assert.ErrorIs(t, err, meter.ErrNegativeReading)
	})
}

func TestService_RecordBatch_PartialSuccess(t *testing.T) {
	goodMeter := uuid.New()
	badMeter := uuid.New()

	oldGood := dec("100")
	oldBad := dec("200")

	svc := meter.NewService(newFakeRepo())
	results := svc.RecordBatch(context.Background(), []meter.ReadingParams{
		{MeterID: goodMeter, Month: 9, Year: 2026, Old: &oldGood, New: dec("120")},
		{MeterID: badMeter, Month: 9, Year: 2026, Old: &oldBad, New: dec("190")},
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Reading)
	assert.ErrorIs(t, results[1].Err, meter.ErrReadingOrder)
	assert.Nil(t, results[1].Reading)
}
