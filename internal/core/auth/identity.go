package auth

import "github.com/JUST9N1/Security-Backend/internal/core/domain"

// Identity is the authenticated principal attached to a request
type Identity struct {
	AccountID string
	Role      domain.Role
}

// HasRole reports whether the identity's role is in roles
func (i Identity) HasRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
