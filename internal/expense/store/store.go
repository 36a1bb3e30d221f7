package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hoangvn/nhatro/internal/expense"
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

const selectExpenseColumns = `
	e.id, e.location_id, COALESCE(l.name, ''), e.month, e.year, e.category,
	e.description, e.amount, e.spent_at, e.created_at, e.updated_at`

func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var locationID *uuid.UUID

	err := s.Scan(
		&e.ID, &locationID, &e.LocationName, &e.Month, &e.Year,
		&e.Category, &e.Description, &e.Amount, &e.SpentAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.LocationID = locationID

	return &e, nil
}

func (s *Store) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (location_id, month, year, category, description, amount, spent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		e.LocationID, e.Month, e.Year, e.Category, e.Description, e.Amount, e.SpentAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `
		SELECT ` + selectExpenseColumns + `
		FROM expenses e
		LEFT JOIN locations l ON l.id = e.location_id
		WHERE e.id = $1 AND e.deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("selecting expense: %w", err)
	}

	return e, nil
}

func (s *Store) Update(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET location_id = $1, month = $2, year = $3, category = $4,
			description = $5, amount = $6, spent_at = $7, updated_at = now()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query,
		e.LocationID, e.Month, e.Year, e.Category, e.Description,
		e.Amount, e.SpentAt, e.ID,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE expenses
		SET deleted_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if affected == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) List(ctx context.Context, filter expense.Filter) ([]*expense.Expense, error) {
	query := `
		SELECT ` + selectExpenseColumns + `
		FROM expenses e
		LEFT JOIN locations l ON l.id = e.location_id
		WHERE e.deleted_at IS NULL`

	var (
		conditions []string
		args       []any
	)

	if filter.LocationID != nil {
		args = append(args, *filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("e.location_id = $%d", len(args)))
	}

	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, fmt.Sprintf("e.month = $%d", len(args)))
	}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("e.year = $%d", len(args)))
	}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY e.spent_at DESC, e.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

// MonthlyTotal sums one period's expenses. Shared rows (NULL location)
// count only in the unscoped total; a location-scoped total would
// otherwise book the same shared cost against every location.
func (s *Store) MonthlyTotal(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error) {
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
