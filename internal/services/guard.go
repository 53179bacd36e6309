package services

import "snapbook/internal/domain"

// Decision is the Access Guard verdict for one request.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Authorize admits a session only when it exists and carries the required
// role. Denials point at the login entry of the required role.
func Authorize(s *domain.Session, required domain.Role) Decision {
	if s != nil && s.Role == required {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: required.LoginPath()}
}
