package budget

import (
	"context"
	"fmt"

	"fintrack/internal/domain/category"
)

// Service owns budget CRUD. Ownership of both the budget and its category is
// checked on every mutating path.
type Service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cat, err := s.categories.GetByID(ctx, params.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil || cat.UserID != params.UserID {
		return nil, ErrForbidden
	}
	b, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Budget, error) {
	budgets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		cat, err := s.categories.GetByID(ctx, *params.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("get category: %w", err)
		}
		if cat == nil || cat.UserID != userID {
			return nil, ErrForbidden
		}
	}

	// Revalidate the effective budget after the patch is applied.
	effective := CreateParams{
		UserID:         userID,
		CategoryID:     current.CategoryID,
		Name:           current.Name,
		Amount:         current.Amount,
		StartDate:      current.StartDate,
		EndDate:        current.EndDate,
		Period:         current.Period,
		AlertThreshold: current.AlertThreshold,
	}
	if params.CategoryID != nil {
		effective.CategoryID = *params.CategoryID
	}
	if params.Name != nil {
		effective.Name = *params.Name
	}
	if params.Amount != nil {
		effective.Amount = *params.Amount
	}
	if params.StartDate != nil {
		effective.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		effective.EndDate = *params.EndDate
	}
	if params.Period != nil {
		effective.Period = *params.Period
	}
	if params.AlertThreshold != nil {
		effective.AlertThreshold = *params.AlertThreshold
	}
	if err := effective.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
