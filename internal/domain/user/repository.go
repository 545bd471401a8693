package user

import "context"

// Repository defines the interface for user data operations.
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, id uint) error

	// GetByID retrieves a user by ID; returns (nil, nil) when absent
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByIDs retrieves multiple users keyed by ID
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)

	// GetByEmail retrieves a user by email; returns (nil, nil) when absent
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if a user exists by email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves a paginated list of users
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}

// ListFilter represents filtering and pagination options for user list.
type ListFilter struct {
	Page     int
	PageSize int
	Role     string
	Status   string
}
