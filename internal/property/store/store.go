package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hoangvn/nhatro/internal/property"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) CreateLocation(ctx context.Context, loc *property.Location) error {
	query := `
		INSERT INTO locations (
			name, address, owner_name, owner_phone,
			electric_price, water_price, garbage_fee, wifi_fee, tv_fee, laundry_fee,
			payment_due_day, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		loc.Name, loc.Address, loc.OwnerName, loc.OwnerPhone,
		loc.ElectricPrice, loc.WaterPrice, loc.GarbageFee, loc.WifiFee, loc.TVFee, loc.LaundryFee,
		loc.PaymentDueDay, loc.Notes,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating location: %w", err)
	}

	return nil
}

const selectLocationColumns = `
	id, name, address, owner_name, owner_phone,
	electric_price, water_price, garbage_fee, wifi_fee, tv_fee, laundry_fee,
	payment_due_day, notes, created_at, updated_at
`

func scanLocation(s scanner) (*property.Location, error) {
	var loc property.Location

	if err := s.Scan(
		&loc.ID, &loc.Name, &loc.Address, &loc.OwnerName, &loc.OwnerPhone,
		&loc.ElectricPrice, &loc.WaterPrice, &loc.GarbageFee, &loc.WifiFee, &loc.TVFee, &loc.LaundryFee,
		&loc.PaymentDueDay, &loc.Notes, &loc.CreatedAt, &loc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &loc, nil
}

func (s *Store) GetLocation(ctx context.Context, id uuid.UUID) (*property.Location, error) {
	query := `SELECT ` + selectLocationColumns + ` FROM locations WHERE id = $1 AND deleted_at IS NULL`

	loc, err := scanLocation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting location: %w", err)
	}

	return loc, nil
}

func (s *Store) ListLocations(ctx context.Context) ([]*property.Location, error) {
	query := `SELECT ` + selectLocationColumns + ` FROM locations WHERE deleted_at IS NULL ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []*property.Location

	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}

		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

func (s *Store) UpdateLocation(ctx context.Context, loc *property.Location) error {
	query := `
		UPDATE locations
		SET name = $1, address = $2, owner_name = $3, owner_phone = $4,
			electric_price = $5, water_price = $6, garbage_fee = $7,
			wifi_fee = $8, tv_fee = $9, laundry_fee = $10,
			payment_due_day = $11, notes = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		loc.Name, loc.Address, loc.OwnerName, loc.OwnerPhone,
		loc.ElectricPrice, loc.WaterPrice, loc.GarbageFee,
		loc.WifiFee, loc.TVFee, loc.LaundryFee,
		loc.PaymentDueDay, loc.Notes, loc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}

	return nil
}

func (s *Store) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE locations SET deleted_at = NOW() WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}

	return nil
}

func (s *Store) CreateRoomType(ctx context.Context, rt *property.RoomType) error {
	query := `
		INSERT INTO room_types (location_id, code, name, price, daily_deduction, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rt.LocationID, rt.Code, rt.Name, rt.Price, rt.DailyDeduction, rt.Description,
	).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating room type: %w", err)
	}

	return nil
}

func (s *Store) ListRoomTypes(ctx context.Context, locationID uuid.UUID) ([]*property.RoomType, error) {
	query := `
		SELECT id, location_id, code, name, price, daily_deduction, description, created_at, updated_at
		FROM room_types
		WHERE location_id = $1
		ORDER BY code ASC
	`

	rows, err := s.db.QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("listing room types: %w", err)
	}
	defer rows.Close()

	var types []*property.RoomType

	for rows.Next() {
		var rt property.RoomType

		if err := rows.Scan(
			&rt.ID, &rt.LocationID, &rt.Code, &rt.Name, &rt.Price,
			&rt.DailyDeduction, &rt.Description, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning room type: %w", err)
		}

		types = append(types, &rt)
	}

	return types, rows.Err()
}

func (s *Store) UpdateRoomType(ctx context.Context, rt *property.RoomType) error {
	query := `
		UPDATE room_types
		SET code = $1, name = $2, price = $3, daily_deduction = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`

	if _, err := s.db.ExecContext(ctx, query, rt.Code, rt.Name, rt.Price, rt.DailyDeduction, rt.Description, rt.ID); err != nil {
		return fmt.Errorf("updating room type: %w", err)
	}

	return nil
}

func (s *Store) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting room type: %w", err)
	}

	return nil
}

// Room status is derived in SQL from the existence of an active
// tenancy; there is no status column to drift out of sync.
const selectRoomColumns = `
	r.id, r.location_id, r.room_type_id, r.room_code, r.price,
	CASE WHEN EXISTS (
		SELECT 1 FROM tenancies t WHERE t.room_id = r.id AND t.is_active
	) THEN 'occupied' ELSE 'vacant' END,
	r.notes, r.created_at, r.updated_at
`

func scanRoom(s scanner) (*property.Room, error) {
	var room property.Room

	var roomTypeID *uuid.UUID

	var price sql.NullInt64

	var statusStr string

	if err := s.Scan(
		&room.ID, &room.LocationID, &roomTypeID, &room.Code, &price,
		&statusStr, &room.Notes, &room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return nil, err
	}

	room.RoomTypeID = roomTypeID
	room.Status = property.RoomStatus(statusStr)

	if price.Valid {
		room.Price = &price.Int64
	}

	return &room, nil
}

func (s *Store) CreateRoom(ctx context.Context, room *property.Room) error {
	query := `
		INSERT INTO rooms (location_id, room_type_id, room_code, price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		room.LocationID, room.RoomTypeID, room.Code, room.Price, room.Notes,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating room: %w", err)
	}

	return nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms r WHERE r.id = $1 AND r.deleted_at IS NULL`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting room: %w", err)
	}

	return room, nil
}

func (s *Store) ListRooms(ctx context.Context, filter property.RoomFilter) ([]*property.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms r WHERE r.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND r.location_id = $%d", argIdx)

		args = append(args, *filter.LocationID)
		argIdx++
	}

	if filter.Status != nil {
		occupied := *filter.Status == property.RoomOccupied
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM tenancies t WHERE t.room_id = r.id AND t.is_active) = $%d", argIdx)

		args = append(args, occupied)
		argIdx++
	}

	query += " ORDER BY r.room_code ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*property.Room

	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}

		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (s *Store) UpdateRoom(ctx context.Context, room *property.Room) error {
	query := `
		UPDATE rooms
		SET room_type_id = $1, room_code = $2, price = $3, notes = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, room.RoomTypeID, room.Code, room.Price, room.Notes, room.ID); err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE rooms SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	return nil
}

const selectTenancyColumns = `
	id, room_id, full_name, phone, id_card,
	move_in_date, move_out_date, is_active, notes, created_at, updated_at
`

func scanTenancy(s scanner) (*property.Tenancy, error) {
	var t property.Tenancy

	var moveOut sql.NullTime

	if err := s.Scan(
		&t.ID, &t.RoomID, &t.FullName, &t.Phone, &t.IDCard,
		&t.MoveInDate, &moveOut, &t.Active, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if moveOut.Valid {
		t.MoveOutDate = &moveOut.Time
	}

	return &t, nil
}

// CreateTenancy relies on the partial unique index on
// tenancies(room_id) WHERE is_active: the second of two racing
// move-ins gets no row back and the room stays singly occupied.
func (s *Store) CreateTenancy(ctx context.Context, t *property.Tenancy) error {
	query := `
		INSERT INTO tenancies (room_id, full_name, phone, id_card, move_in_date, is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, NOW(), NOW())
		ON CONFLICT (room_id) WHERE is_active DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.RoomID, t.FullName, t.Phone, t.IDCard, t.MoveInDate, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return property.ErrRoomOccupied
		}

		return fmt.Errorf("creating tenancy: %w", err)
	}

	return nil
}

func (s *Store) GetTenancy(ctx context.Context, id uuid.UUID) (*property.Tenancy, error) {
	query := `SELECT ` + selectTenancyColumns + ` FROM tenancies WHERE id = $1`

	t, err := scanTenancy(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting tenancy: %w", err)
	}

	return t, nil
}

func (s *Store) ListTenancies(ctx context.Context, filter property.TenancyFilter) ([]*property.Tenancy, error) {
	query := `SELECT ` + selectTenancyColumns + ` FROM tenancies WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.RoomID != nil {
		query += fmt.Sprintf(" AND room_id = $%d", argIdx)

		args = append(args, *filter.RoomID)
		argIdx++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	query += " ORDER BY move_in_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenancies: %w", err)
	}
	defer rows.Close()

	var tenancies []*property.Tenancy

	for rows.Next() {
		t, err := scanTenancy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenancy: %w", err)
		}

		tenancies = append(tenancies, t)
	}

	return tenancies, rows.Err()
}

func (s *Store) EndTenancy(ctx context.Context, id uuid.UUID, moveOut time.Time) (*property.Tenancy, error) {
	query := `
		UPDATE tenancies
		SET is_active = FALSE, move_out_date = $1, updated_at = NOW()
		WHERE id = $2 AND is_active
		RETURNING ` + selectTenancyColumns

	t, err := scanTenancy(s.db.QueryRowContext(ctx, query, moveOut, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.endTenancyErr(ctx, id)
		}

		return nil, fmt.Errorf("ending tenancy: %w", err)
	}

	return t, nil
}

// endTenancyErr distinguishes a missing tenancy from one already ended.
func (s *Store) endTenancyErr(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTenancy(ctx, id); err != nil {
		return err
	}

	return property.ErrTenancyEnded
}

func (s *Store) MoveTenancy(ctx context.Context, id, newRoomID uuid.UUID) (*property.Tenancy, error) {
	query := `
		UPDATE tenancies
		SET room_id = $1, updated_at = NOW()
		WHERE id = $2 AND is_active
		RETURNING ` + selectTenancyColumns

	t, err := scanTenancy(s.db.QueryRowContext(ctx, query, newRoomID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.endTenancyErr(ctx, id)
		}

		if isUniqueViolation(err) {
			return nil, property.ErrRoomOccupied
		}

		return nil, fmt.Errorf("moving tenancy: %w", err)
	}

	return t, nil
}
