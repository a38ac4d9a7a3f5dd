package domain

const RoleAdmin = "ADMIN"

// Shopper is the authenticated identity a request acts on behalf of.
type Shopper struct {
	ID    string
	Email string
	Role  string
}

func (s Shopper) IsAdmin() bool {
	return s.Role == RoleAdmin
}
