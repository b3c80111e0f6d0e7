package transaction

import "context"

// Repository defines the interface for transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Transaction, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}
