package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	// User status
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"

	// Book availability status as reported by the API
	BookStatusAvailable = "available"
	BookStatusBorrowed  = "borrowed"

	// Database table names
	TableUsers    = "users"
	TableBooks    = "books"
	TableLoans    = "loans"
	TableStudents = "students"

	// Default values
	DefaultUserStatus = UserStatusActive

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Admin access required"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
