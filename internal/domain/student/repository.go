package student

import "context"

// Repository defines the interface for student directory persistence.
type Repository interface {
	// Create creates a new student record
	Create(ctx context.Context, student *Student) error

	// Update updates an existing student record
	Update(ctx context.Context, student *Student) error

	// Delete removes a student record by ID
	Delete(ctx context.Context, id uint) error

	// GetByID retrieves a student by ID; returns (nil, nil) when absent
	GetByID(ctx context.Context, id uint) (*Student, error)

	// List retrieves all students
	List(ctx context.Context) ([]*Student, error)
}
