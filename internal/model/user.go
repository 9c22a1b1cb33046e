package model

// User usa username como primary key (no id entero).
type User struct {
	Username string
	Password string
	Enabled  bool
	Roles    []*Role
}

// AddRole agrega un rol por nombre con la back-reference ya fijada.
func (u *User) AddRole(name string) {
	u.Roles = append(u.Roles, &Role{Name: name, User: u})
}

// Role referencia exactamente un User. El prefijo ROLE_ lo normaliza el
// servicio al guardar, no el modelo.
type Role struct {
	ID   int
	Name string
	User *User
}
