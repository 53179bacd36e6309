package domain

// Role is the closed set of subjects the app knows about.
type Role string

const (
	RoleCustomer     Role = "customer"
	RolePhotographer Role = "photographer"
	RoleAdmin        Role = "admin"
)

// Roles lists every role in portal order.
var Roles = []Role{RoleCustomer, RolePhotographer, RoleAdmin}

// ParseRole maps a path segment or stored value to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RolePhotographer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// LoginPath is the login entry point for the role.
func (r Role) LoginPath() string {
	switch r {
	case RoleCustomer:
		return "/login/customer"
	case RolePhotographer:
		return "/login/photographer"
	case RoleAdmin:
		return "/login/admin"
	}
	return "/login"
}

// HomePath is where a freshly logged-in subject lands.
func (r Role) HomePath() string {
	switch r {
	case RoleCustomer:
		return "/photographers"
	case RolePhotographer:
		return "/photographer-dashboard"
	case RoleAdmin:
		return "/admin-dashboard"
	}
	return "/"
}

// Title is the human label used on the login pages.
func (r Role) Title() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RolePhotographer:
		return "Photographer"
	case RoleAdmin:
		return "Admin"
	}
	return ""
}

type Account struct {
	Username       string `db:"username"`
	Email          string `db:"email"`
	Hash           string `db:"password_hash"`
	Role           Role   `db:"role"`
	PhotographerID string `db:"photographer_id"`
	CreatedAt      string `db:"created_at"`
}
