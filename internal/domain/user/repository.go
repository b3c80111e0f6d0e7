package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// ListIDs returns every user id, used by the alert digest scheduler.
	ListIDs(ctx context.Context) ([]int64, error)
	// SetDeviceToken stores or clears (nil) the user's FCM device token.
	SetDeviceToken(ctx context.Context, userID int64, token *string) error
}
