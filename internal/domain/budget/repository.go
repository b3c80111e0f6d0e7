package budget

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, id int64) (*Budget, error)
	ListByUserID(ctx context.Context, userID int64) ([]Budget, error)
	// ListOverlapping returns the user's budgets whose [start,end] window
	// intersects the given range.
	ListOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]Budget, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error)
	Delete(ctx context.Context, id int64) error
}
