package property_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/property"
)

// Fake repository; only the funcs a test sets are exercised.
type fakeRepo struct {
	getRoomFunc       func(ctx context.Context, id uuid.UUID) (*property.Room, error)
	createTenancyFunc func(ctx context.Context, t *property.Tenancy) error
	createLocFunc     func(ctx context.Context, loc *property.Location) error
}

func (f *fakeRepo) CreateLocation(ctx context.Context, loc *property.Location) error {
	if f.createLocFunc != nil {
		return f.createLocFunc(ctx, loc)
	}

	return nil
}

func (f *fakeRepo) GetLocation(ctx context.Context, id uuid.UUID) (*property.Location, error) {
	return nil, property.ErrNotFound
}
func (f *fakeRepo) ListLocations(ctx context.Context) ([]*property.Location, error) { return nil, nil }
func (f *fakeRepo) UpdateLocation(ctx context.Context, loc *property.Location) error {
	return nil
}
func (f *fakeRepo) DeleteLocation(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeRepo) CreateRoomType(ctx context.Context, rt *property.RoomType) error { return nil }
func (f *fakeRepo) ListRoomTypes(ctx context.Context, locationID uuid.UUID) ([]*property.RoomType, error) {
	return nil, nil
}
func (f *fakeRepo) UpdateRoomType(ctx context.Context, rt *property.RoomType) error { return nil }
func (f *fakeRepo) DeleteRoomType(ctx context.Context, id uuid.UUID) error          { return nil }

func (f *fakeRepo) CreateRoom(ctx context.Context, room *property.Room) error { return nil }

func (f *fakeRepo) GetRoom(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	if f.getRoomFunc != nil {
		return f.getRoomFunc(ctx, id)
	}

	return &property.Room{ID: id, Status: property.RoomVacant}, nil
}

func (f *fakeRepo) ListRooms(ctx context.Context, filter property.RoomFilter) ([]*property.Room, error) {
	return nil, nil
}
func (f *fakeRepo) UpdateRoom(ctx context.Context, room *property.Room) error { return nil }
func (f *fakeRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error        { return nil }

func (f *fakeRepo) CreateTenancy(ctx context.Context, t *property.Tenancy) error {
	if f.createTenancyFunc != nil {
		return f.createTenancyFunc(ctx, t)
	}

	t.ID = uuid.New()

	return nil
}

func (f *fakeRepo) GetTenancy(ctx context.Context, id uuid.UUID) (*property.Tenancy, error) {
	return nil, property.ErrNotFound
}

func (f *fakeRepo) ListTenancies(ctx context.Context, filter property.TenancyFilter) ([]*property.Tenancy, error) {
	return nil, nil
}

func (f *fakeRepo) EndTenancy(ctx context.Context, id uuid.UUID, moveOut time.Time) (*property.Tenancy, error) {
	return nil, property.ErrTenancyEnded
}

func (f *fakeRepo) MoveTenancy(ctx context.Context, id, newRoomID uuid.UUID) (*property.Tenancy, error) {
	return nil, property.ErrRoomOccupied
}

func validLocationParams() property.LocationParams {
	return property.LocationParams{
		Name:          "Khu A",
		ElectricPrice: 3_500,
		WaterPrice:    15_000,
		GarbageFee:    30_000,
		PaymentDueDay: 5,
	}
}

func TestService_CreateLocation_Validation(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(*property.LocationParams)
		wantErr error
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(p *property.LocationParams) {},
		},
		{
			name:    "DueDayZero",
			mutate:  func(p *property.LocationParams) { p.PaymentDueDay = 0 },
			wantErr: property.ErrInvalidDueDay,
		},
		{
			name:    "DueDayTooLarge",
			mutate:  func(p *property.LocationParams) { p.PaymentDueDay = 32 },
			wantErr: property.ErrInvalidDueDay,
		},
		{
			name:    "NegativeElectricPrice",
			mutate:  func(p *property.LocationParams) { p.ElectricPrice = -1 },
			wantErr: property.ErrInvalidPrice,
		},
		{
			name:    "NegativeFixedFee",
			mutate:  func(p *property.LocationParams) { p.LaundryFee = -500 },
			wantErr: property.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validLocationParams()
			tt.mutate(&params)

			svc := property.NewService(&fakeRepo{})
			loc, err := svc.CreateLocation(context.Background(), params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, loc)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, loc)
			assert.Equal(t, params.Name, loc.Name)
		})
	}
}

func TestService_CreateRoomType_Validation(t *testing.T) {
	svc := property.NewService(&fakeRepo{})

	_, err := svc.CreateRoomType(context.Background(), property.RoomTypeParams{Price: -1})
	assert.ErrorIs(t, err, property.ErrInvalidPrice)

	_, err = svc.CreateRoomType(context.Background(), property.RoomTypeParams{Price: 2_000_000, DailyDeduction: -1})
	assert.ErrorIs(t, err, property.ErrInvalidPrice)

	rt, err := svc.CreateRoomType(context.Background(), property.RoomTypeParams{
		Code:           "STD",
		Price:          2_000_000,
		DailyDeduction: 66_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "STD", rt.Code)
}

func TestService_MoveIn(t *testing.T) {
	t.Run("OccupiedRoomRejected", func(t *testing.T) {
		repo := &fakeRepo{
			createTenancyFunc: func(ctx context.Context, tn *property.Tenancy) error {
				return property.ErrRoomOccupied
			},
		}

		svc := property.NewService(repo)
		_, err := svc.MoveIn(context.Background(), property.MoveInParams{
			RoomID:     uuid.New(),
			FullName:   "Nguyen Van A",
			MoveInDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, property.ErrRoomOccupied)
	})

	t.Run("UnknownRoomRejected", func(t *testing.T) {
		repo := &fakeRepo{
			getRoomFunc: func(ctx context.Context, id uuid.UUID) (*property.Room, error) {
				return nil, property.ErrNotFound
			},
		}

		svc := property.NewService(repo)
		_, err := svc.MoveIn(context.Background(), property.MoveInParams{RoomID: uuid.New()})
		assert.ErrorIs(t, err, property.ErrNotFound)
	})

	t.Run("StartsActiveTenancy", func(t *testing.T) {
		svc := property.NewService(&fakeRepo{})
		tn, err := svc.MoveIn(context.Background(), property.MoveInParams{
			RoomID:     uuid.New(),
			FullName:   "Nguyen Van A",
			MoveInDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.True(t, tn.Active)
		assert.Nil(t, tn.MoveOutDate)
	})
}
