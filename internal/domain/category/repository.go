package category

import "context"

// Repository defines the interface for category data access.
// Deleting a category cascades to its transactions and budgets at the
// storage layer.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)
	Rename(ctx context.Context, id int64, name string) (*Category, error)
	Delete(ctx context.Context, id int64) error
}
