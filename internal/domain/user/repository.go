package user

import "context"

type UserRepository interface {
	// Create inserts a new user record
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// ExistsByEmail reports whether any user has the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateProfile updates the mutable profile fields (name, email)
	UpdateProfile(ctx context.Context, id string, name *string, email *string) (User, error)

	// LinkGoogleAccount attaches a Google OAuth identity to an existing user
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)

	// List retrieves all users in insertion order
	List(ctx context.Context) ([]User, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int64, error)
}
