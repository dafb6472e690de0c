package session

// UserRole is the user's role
type UserRole = string

const (
	// RoleGuest is a guest role (i.e. view)
	RoleGuest UserRole = "guest"
	// RoleMember is a member (i.e. view, publish)
	RoleMember UserRole = "member"
	// RoleAdmin is an admin role (i.e. view, publish, manage)
	RoleAdmin UserRole = "admin"
	// RoleOwner is the instance owner
	RoleOwner UserRole = "owner"
)

// IsAdmin reports whether the role carries admin privileges.
func IsAdmin(r UserRole) bool {
	return r == RoleAdmin || r == RoleOwner
}

// UnknownUser is the display name exposed while no identity is present.
const UnknownUser = "unknown"

// Identity is the persisted display-name/token pair representing the current
// user. It is either fully absent (empty token) or fully present; the
// credential store never exposes a torn state.
type Identity struct {
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}

// Present reports whether the identity holds a session token.
func (i Identity) Present() bool {
	return i.Token != ""
}

// Name returns the display name, or UnknownUser when the identity is absent
// or carries no name.
func (i Identity) Name() string {
	if i.DisplayName == "" {
		return UnknownUser
	}
	return i.DisplayName
}

// User is one entry of the known-identity list used to populate the login
// form.
type User struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}
