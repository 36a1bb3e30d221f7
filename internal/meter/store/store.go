package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangvn/nhatro/internal/meter"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateMeter(ctx context.Context, m *meter.Meter) error {
	query := `
		INSERT INTO meters (room_id, meter_type, meter_code, notes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (room_id, meter_type) DO NOTHING
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.RoomID, m.Kind, m.Code, m.Notes).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meter.ErrMeterExists
		}

		return fmt.Errorf("creating meter: %w", err)
	}

	return nil
}

const selectMeterColumns = `
	m.id, m.room_id, m.meter_type, m.meter_code, m.notes, m.created_at,
	latest.new_reading
`

// Latest counter value rides along via a lateral join.
const meterFromClause = `
	FROM meters m
	LEFT JOIN LATERAL (
		SELECT new_reading
		FROM meter_readings
		WHERE meter_id = m.id
		ORDER BY year DESC, month DESC
		LIMIT 1
	) latest ON TRUE
`

func scanMeter(s scanner) (*meter.Meter, error) {
	var m meter.Meter

	var kind string

	var latest sql.NullString

	if err := s.Scan(&m.ID, &m.RoomID, &kind, &m.Code, &m.Notes, &m.CreatedAt, &latest); err != nil {
		return nil, err
	}

	m.Kind = meter.Kind(kind)

	if latest.Valid {
		val, err := decimal.NewFromString(latest.String)
		if err != nil {
			return nil, fmt.Errorf("parsing latest reading: %w", err)
		}

		m.LatestReading = &val
	}

	return &m, nil
}

func (s *Store) GetMeter(ctx context.Context, id uuid.UUID) (*meter.Meter, error) {
	query := `SELECT ` + selectMeterColumns + meterFromClause + ` WHERE m.id = $1`

	m, err := scanMeter(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, meter.ErrNotFound
		}

		return nil, fmt.Errorf("getting meter: %w", err)
	}

	return m, nil
}

func (s *Store) ListMeters(ctx context.Context, filter meter.MeterFilter) ([]*meter.Meter, error) {
	query := `SELECT ` + selectMeterColumns + meterFromClause + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.RoomID != nil {
		query += fmt.Sprintf(" AND m.room_id = $%d", argIdx)

		args = append(args, *filter.RoomID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND m.meter_type = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	query += " ORDER BY m.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing meters: %w", err)
	}
	defer rows.Close()

	var meters []*meter.Meter

	for rows.Next() {
		m, err := scanMeter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meter: %w", err)
		}

		meters = append(meters, m)
	}

	return meters, rows.Err()
}

func (s *Store) FindRoomMeter(ctx context.Context, roomCode string, kind meter.Kind) (*meter.Meter, error) {
	query := `SELECT ` + selectMeterColumns + meterFromClause + `
		JOIN rooms r ON r.id = m.room_id
		WHERE r.room_code = $1 AND r.deleted_at IS NULL AND m.meter_type = $2`

	m, err := scanMeter(s.db.QueryRowContext(ctx, query, roomCode, kind))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %s %s meter: %w", roomCode, kind, meter.ErrNotFound)
		}

		return nil, fmt.Errorf("finding room meter: %w", err)
	}

	return m, nil
}

func (s *Store) CreateReading(ctx context.Context, r *meter.Reading) error {
	query := `
		INSERT INTO meter_readings (meter_id, month, year, old_reading, new_reading, consumption, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (meter_id, month, year) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.MeterID, r.Month, r.Year,
		r.Old.String(), r.New.String(), r.Consumption.String(),
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meter.ErrDuplicateReading
		}

		return fmt.Errorf("creating reading: %w", err)
	}

	return nil
}

const selectReadingColumns = `
	mr.id, mr.meter_id, mr.month, mr.year,
	mr.old_reading, mr.new_reading, mr.consumption, mr.created_at, mr.updated_at
`

func scanReading(s scanner) (*meter.Reading, error) {
	var r meter.Reading

	var oldStr, newStr, consStr string

	if err := s.Scan(
		&r.ID, &r.MeterID, &r.Month, &r.Year,
		&oldStr, &newStr, &consStr, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error

	if r.Old, err = decimal.NewFromString(oldStr); err != nil {
		return nil, fmt.Errorf("parsing old reading: %w", err)
	}

	if r.New, err = decimal.NewFromString(newStr); err != nil {
		return nil, fmt.Errorf("parsing new reading: %w", err)
	}

	if r.Consumption, err = decimal.NewFromString(consStr); err != nil {
		return nil, fmt.Errorf("parsing consumption: %w", err)
	}

	return &r, nil
}

func (s *Store) ListReadings(ctx context.Context, filter meter.ReadingFilter) ([]*meter.Reading, error) {
	query := `SELECT ` + selectReadingColumns + `
		FROM meter_readings mr
		JOIN meters m ON m.id = mr.meter_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.MeterID != nil {
		query += fmt.Sprintf(" AND mr.meter_id = $%d", argIdx)

		args = append(args, *filter.MeterID)
		argIdx++
	}

	if filter.RoomID != nil {
		query += fmt.Sprintf(" AND m.room_id = $%d", argIdx)

		args = append(args, *filter.RoomID)
		argIdx++
	}

	if filter.Month != nil {
		query += fmt.Sprintf(" AND mr.month = $%d", argIdx)

		args = append(args, *filter.Month)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(" AND mr.year = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	query += " ORDER BY mr.year DESC, mr.month DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}
	defer rows.Close()

	var readings []*meter.Reading

	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}

		readings = append(readings, r)
	}

	return readings, rows.Err()
}

func (s *Store) LatestReading(ctx context.Context, meterID uuid.UUID) (*meter.Reading, error) {
	query := `SELECT ` + selectReadingColumns + `
		FROM meter_readings mr
		WHERE mr.meter_id = $1
		ORDER BY mr.year DESC, mr.month DESC
		LIMIT 1`

	r, err := scanReading(s.db.QueryRowContext(ctx, query, meterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting latest reading: %w", err)
	}

	return r, nil
}
