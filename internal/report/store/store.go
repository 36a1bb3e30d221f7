package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Dashboard(ctx context.Context, month, year int) (*report.Dashboard, error) {
	d := &report.Dashboard{Month: month, Year: year}

	query := `
		SELECT
			(SELECT COUNT(*) FROM locations WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM rooms WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM rooms r
				WHERE r.deleted_at IS NULL
					AND EXISTS (SELECT 1 FROM tenancies t WHERE t.room_id = r.id AND t.is_active))`

	err := s.db.QueryRowContext(ctx, query).Scan(&d.Locations, &d.Rooms, &d.OccupiedRooms)
	if err != nil {
		return nil, fmt.Errorf("counting rooms: %w", err)
	}

	d.VacantRooms = d.Rooms - d.OccupiedRooms

	query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status <> 'paid'),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(LEAST(paid_amount, total)), 0)
		FROM invoices
		WHERE month = $1 AND year = $2`

	err = s.db.QueryRowContext(ctx, query, month, year).
		Scan(&d.InvoiceCount, &d.UnpaidInvoices, &d.Billed, &d.Collected)
	if err != nil {
		return nil, fmt.Errorf("summing invoices: %w", err)
	}

	d.Outstanding = d.Billed - d.Collected

	return d, nil
}

func (s *Store) MonthlyTotals(ctx context.Context, locationID *uuid.UUID, month, year int) (*report.Monthly, error) {
	m := &report.Monthly{Month: month, Year: year, LocationID: locationID}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE i.status = 'paid'),
			COALESCE(SUM(i.total), 0),
			COALESCE(SUM(i.paid_amount), 0)
		FROM invoices i
		JOIN rooms r ON r.id = i.room_id
		WHERE i.month = $1 AND i.year = $2`

	args := []any{month, year}

	if locationID != nil {
		args = append(args, *locationID)
		query += fmt.Sprintf(" AND r.location_id = $%d", len(args))
	}

	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&m.InvoiceCount, &m.PaidCount, &m.Billed, &m.Collected)
	if err != nil {
		return nil, fmt.Errorf("summing monthly invoices: %w", err)
	}

	return m, nil
}

func (s *Store) UnpaidInvoices(ctx context.Context, locationID *uuid.UUID, month, year int) ([]report.UnpaidInvoice, error) {
	query := `
		SELECT i.id, r.room_code, COALESCE(t.full_name, ''), COALESCE(t.phone, ''),
			i.total, i.paid_amount
		FROM invoices i
		JOIN rooms r ON r.id = i.room_id
		LEFT JOIN tenancies t ON t.id = i.tenancy_id
		WHERE i.month = $1 AND i.year = $2 AND i.status <> 'paid'`

	args := []any{month, year}

	if locationID != nil {
		args = append(args, *locationID)
		query += fmt.Sprintf(" AND r.location_id = $%d", len(args))
	}

	query += " ORDER BY r.room_code"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting unpaid invoices: %w", err)
	}
	defer rows.Close()

	var unpaid []report.UnpaidInvoice

	for rows.Next() {
		var u report.UnpaidInvoice

		err := rows.Scan(&u.InvoiceID, &u.RoomCode, &u.TenantName, &u.Phone, &u.Total, &u.PaidAmount)
		if err != nil {
			return nil, fmt.Errorf("scanning unpaid invoice: %w", err)
		}

		u.Remaining = u.Total - u.PaidAmount
		unpaid = append(unpaid, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unpaid invoices: %w", err)
	}

	return unpaid, nil
}

// MonthlyExpenses sums one period's expenses. Shared expenses (NULL
// location) count only in the unscoped total.
func (s *Store) MonthlyExpenses(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE month = $1 AND year = $2 AND deleted_at IS NULL`

	args := []any{month, year}

	if locationID != nil {
		args = append(args, *locationID)
		query += fmt.Sprintf(" AND location_id = $%d", len(args))
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing expenses: %w", err)
	}

	return total, nil
}
