// Package authorization provides role definitions and access checks.
package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// Principal identifies the authenticated caller of a core operation.
// It is resolved once at the request boundary and passed explicitly into
// every use case; nothing below the handlers reads ambient auth state.
type Principal struct {
	UserID uint
	Role   UserRole
}

// IsAdmin reports whether the principal carries the admin capability.
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

// IsZero reports whether the principal is unresolved (unauthenticated caller).
func (p Principal) IsZero() bool {
	return p.UserID == 0
}
