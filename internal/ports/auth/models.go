package auth

import "strings"

const rolePrefix = "ROLE_"

// Claims representa la información extraída del token.
type Claims struct {
	Username string
	Roles    []string
}

// HasRole compara ignorando el prefijo ROLE_ en ambos lados, así los
// guards de rutas usan los nombres pelados (OWNER_ADMIN, VET_ADMIN, ADMIN).
func (c Claims) HasRole(role string) bool {
	want := strings.TrimPrefix(role, rolePrefix)
	for _, r := range c.Roles {
		if strings.TrimPrefix(r, rolePrefix) == want {
			return true
		}
	}
	return false
}

// HasAnyRole es el equivalente a un guard con varios roles permitidos.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}
