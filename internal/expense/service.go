package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Get(ctx context.Context, id uuid.UUID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]*Expense, error)
	// MonthlyTotal sums expenses for a location and period. A nil
	// location sums everything, shared rows included; a concrete
	// location sums only rows booked against it.
	MonthlyTotal(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error)
}

type Filter struct {
	LocationID *uuid.UUID
	Month      *int
	Year       *int
	Category   *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	// LocationID is nil for expenses shared across all locations.
	LocationID  *uuid.UUID
	Month       int
	Year        int
	Category    string
	Description string
	Amount      int64
	SpentAt     time.Time
}

func (p Params) validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}

	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch p.Category {
	case "", CategoryRepair, CategoryUtility, CategoryMaintenance, CategoryOther:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}

	return nil
}

// category defaults the empty string to "other".
func (p Params) category() string {
	if p.Category == "" {
		return CategoryOther
	}

	return p.Category
}

func (s *Service) Create(ctx context.Context, params Params) (*Expense, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	spentAt := params.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	e := &Expense{
		LocationID:  params.LocationID,
		Month:       params.Month,
		Year:        params.Year,
		Category:    params.category(),
		Description: params.Description,
		Amount:      params.Amount,
		SpentAt:     spentAt,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Expense, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	e.LocationID = params.LocationID
	e.Month = params.Month
	e.Year = params.Year
	e.Category = params.category()
	e.Description = params.Description
	e.Amount = params.Amount

	if !params.SpentAt.IsZero() {
		e.SpentAt = params.SpentAt
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Expense, error) {
	if filter.Month != nil && (*filter.Month < 1 || *filter.Month > 12) {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, *filter.Month)
	}

	return s.repo.List(ctx, filter)
}

func (s *Service) MonthlyTotal(ctx context.Context, locationID *uuid.UUID, month, year int) (int64, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	return s.repo.MonthlyTotal(ctx, locationID, month, year)
}
