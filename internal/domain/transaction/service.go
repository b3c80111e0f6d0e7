package transaction

import (
	"context"
	"errors"
	"math"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/ledger"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidType = errors.New("type must be \"income\" or \"expense\"")
)

// Service contains the business logic for transaction operations.
// The type field is the canonical income/expense classification; Service
// normalizes the amount sign against it at write time so all read-side
// aggregation can assume the two agree.
type Service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

// NormalizeAmount forces the sign of amount to agree with txType:
// positive for income, negative for expense.
func NormalizeAmount(amount float64, txType string) (float64, error) {
	switch txType {
	case ledger.TypeIncome:
		return math.Abs(amount), nil
	case ledger.TypeExpense:
		return -math.Abs(amount), nil
	default:
		return 0, ErrInvalidType
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	amount, err := NormalizeAmount(params.Amount, params.Type)
	if err != nil {
		return nil, err
	}
	params.Amount = amount

	if err := s.checkCategory(ctx, params.CategoryID, params.UserID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	if tx.UserID != userID {
		return nil, ErrForbidden
	}
	return tx, nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]*Transaction, error) {
	return s.repo.ListByUserID(ctx, userID, limit, offset)
}

func (s *Service) Count(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Transaction, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Renormalize against the effective type and amount after the update.
	txType := existing.Type
	if params.Type != nil {
		txType = *params.Type
	}
	amount := existing.Amount
	if params.Amount != nil {
		amount = *params.Amount
	}
	normalized, err := NormalizeAmount(amount, txType)
	if err != nil {
		return nil, err
	}
	params.Type = &txType
	params.Amount = &normalized

	if params.CategoryID != nil {
		if err := s.checkCategory(ctx, *params.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkCategory(ctx context.Context, categoryID, userID int64) error {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return errors.New("category not found")
	}
	if cat.UserID != userID {
		return ErrForbidden
	}
	return nil
}
