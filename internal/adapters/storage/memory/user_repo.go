package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.users[username]
	if !ok {
		return nil, clinic.ErrNotFound
	}

	u := &model.User{
		Username: row.Username,
		Password: row.Password,
		Enabled:  row.Enabled,
	}
	roleIDs := make([]int, 0)
	for id, rr := range r.s.t.roles {
		if rr.Username == username {
			roleIDs = append(roleIDs, id)
		}
	}
	sort.Ints(roleIDs)
	for _, id := range roleIDs {
		rr := r.s.t.roles[id]
		u.Roles = append(u.Roles, &model.Role{ID: rr.ID, Name: rr.Name, User: u})
	}
	return u, nil
}

// Save upserta por username y reemplaza el set de roles completo.
func (r *userRepo) Save(ctx context.Context, u *model.User) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.t.users[u.Username] = userRow{
		Username: u.Username,
		Password: u.Password,
		Enabled:  u.Enabled,
	}

	for id, rr := range r.s.t.roles {
		if rr.Username == u.Username {
			delete(r.s.t.roles, id)
		}
	}
	for _, role := range u.Roles {
		if role.ID == 0 {
			role.ID = r.s.t.nextID("roles")
		}
		r.s.t.roles[role.ID] = roleRow{
			ID:       role.ID,
			Username: u.Username,
			Name:     role.Name,
		}
	}
	return nil
}
