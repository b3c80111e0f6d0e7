package http

import (
	"context"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/domain/user"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc         func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*user.User, error)
	GetByUsernameFunc  func(ctx context.Context, username string) (*user.User, error)
	ListIDsFunc        func(ctx context.Context) ([]int64, error)
	SetDeviceTokenFunc func(ctx context.Context, userID int64, token *string) error
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepo) SetDeviceToken(ctx context.Context, userID int64, token *string) error {
	if m.SetDeviceTokenFunc != nil {
		return m.SetDeviceTokenFunc(ctx, userID, token)
	}
	return nil
}

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, params category.CreateParams) (*category.Category, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*category.Category, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*category.Category, error)
	RenameFunc       func(ctx context.Context, id int64, name string) (*category.Category, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockCategoryRepo) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Rename(ctx context.Context, id int64, name string) (*category.Category, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, id, name)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc       func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*transaction.Transaction, error)
	ListByUserIDFunc func(ctx context.Context, userID int64, limit, offset int) ([]*transaction.Transaction, error)
	CountByUserIDFunc func(ctx context.Context, userID int64) (int64, error)
	UpdateFunc       func(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*transaction.Transaction, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockTransactionRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	CreateFunc          func(ctx context.Context, params budget.CreateParams) (*budget.Budget, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*budget.Budget, error)
	ListByUserIDFunc    func(ctx context.Context, userID int64) ([]budget.Budget, error)
	ListOverlappingFunc func(ctx context.Context, userID int64, start, end time.Time) ([]budget.Budget, error)
	UpdateFunc          func(ctx context.Context, id int64, params budget.UpdateParams) (*budget.Budget, error)
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (m *MockBudgetRepo) Create(ctx context.Context, params budget.CreateParams) (*budget.Budget, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBudgetRepo) ListByUserID(ctx context.Context, userID int64) ([]budget.Budget, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) ListOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]budget.Budget, error) {
	if m.ListOverlappingFunc != nil {
		return m.ListOverlappingFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Update(ctx context.Context, id int64, params budget.UpdateParams) (*budget.Budget, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockReader implements ledger.Reader for testing
type MockReader struct {
	SumExpensesFunc             func(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error)
	SumByTypeFunc               func(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error)
	TotalBalanceFunc            func(ctx context.Context, userID int64) (float64, error)
	ExpenseTotalsByCategoryFunc func(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error)
	MonthlyTotalsFunc           func(ctx context.Context, userID int64, since time.Time) ([]ledger.MonthlyTotal, error)
	RecentEntriesFunc           func(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error)
	EntriesInRangeFunc          func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error)
	CategoryNameFunc            func(ctx context.Context, categoryID int64) (string, error)
}

func (m *MockReader) SumExpenses(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
	if m.SumExpensesFunc != nil {
		return m.SumExpensesFunc(ctx, userID, categoryID, start, end)
	}
	return 0, nil
}

func (m *MockReader) SumByType(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
	if m.SumByTypeFunc != nil {
		return m.SumByTypeFunc(ctx, userID, txType, start, end)
	}
	return 0, nil
}

func (m *MockReader) TotalBalance(ctx context.Context, userID int64) (float64, error) {
	if m.TotalBalanceFunc != nil {
		return m.TotalBalanceFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockReader) ExpenseTotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error) {
	if m.ExpenseTotalsByCategoryFunc != nil {
		return m.ExpenseTotalsByCategoryFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockReader) MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]ledger.MonthlyTotal, error) {
	if m.MonthlyTotalsFunc != nil {
		return m.MonthlyTotalsFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockReader) RecentEntries(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
	if m.RecentEntriesFunc != nil {
		return m.RecentEntriesFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockReader) EntriesInRange(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
	if m.EntriesInRangeFunc != nil {
		return m.EntriesInRangeFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockReader) CategoryName(ctx context.Context, categoryID int64) (string, error) {
	if m.CategoryNameFunc != nil {
		return m.CategoryNameFunc(ctx, categoryID)
	}
	return "", nil
}
