package models

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents a login account.
type User struct {
	// ID is the login name. Unique among users.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Role decides which capabilities the user can reach.
	Role Role `json:"role"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"passwordHash"`
}

// NewUser carries the fields needed to create a User.
type NewUser struct {
	ID       string
	Name     string
	Role     Role
	Password string
}

// Session is the authenticated identity of the current actor.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SessionFor builds the session identity for a user.
func SessionFor(u User) Session {
	return Session{ID: u.ID, Name: u.Name, Role: u.Role}
}
