package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Dashboard(ctx context.Context, month, year int) (*Dashboard, error)
	MonthlyTotals(ctx context.Context, locationID *uuid.UUID, month, year int) (*Monthly, error)
	UnpaidInvoices(ctx context.Context, locationID *uuid.UUID, month, year int) ([]UnpaidInvoice, error)
	MonthlyExpenses(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Dashboard(ctx context.Context, month, year int) (*Dashboard, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	return s.repo.Dashboard(ctx, month, year)
}

// Monthly assembles the profit statement for a period: invoice totals,
// expense totals, and the open invoices behind the outstanding figure.
func (s *Service) Monthly(ctx context.Context, locationID *uuid.UUID, month, year int) (*Monthly, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	m, err := s.repo.MonthlyTotals(ctx, locationID, month, year)
	if err != nil {
		return nil, err
	}

	m.Expenses, err = s.repo.MonthlyExpenses(ctx, locationID, month, year)
	if err != nil {
		return nil, err
	}

	m.Unpaid, err = s.repo.UnpaidInvoices(ctx, locationID, month, year)
	if err != nil {
		return nil, err
	}

	m.Outstanding = m.Billed - m.Collected
	if m.Outstanding < 0 {
		m.Outstanding = 0
	}

	m.Net = m.Collected - m.Expenses

	return m, nil
}
