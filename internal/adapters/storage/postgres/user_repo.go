package postgres

import (
	"context"

	"petclinic-rest/internal/model"
)

type userRepo struct {
	q querier
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.q.QueryRowContext(ctx, `
		SELECT username, password, enabled FROM users WHERE username = $1
	`, username).Scan(&u.Username, &u.Password, &u.Enabled)
	if err != nil {
		return nil, mapErr(err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, role FROM roles WHERE username = $1 ORDER BY id ASC
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		role.User = &u
		u.Roles = append(u.Roles, &role)
	}
	return &u, rows.Err()
}

// Save upserta por username y reemplaza el set de roles completo.
func (r *userRepo) Save(ctx context.Context, u *model.User) error {
	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO users (username, password, enabled)
		VALUES ($1,$2,$3)
		ON CONFLICT (username) DO UPDATE
		SET password = EXCLUDED.password, enabled = EXCLUDED.enabled
	`, u.Username, u.Password, u.Enabled); err != nil {
		return mapErr(err)
	}

	if _, err := r.q.ExecContext(ctx, `
		DELETE FROM roles WHERE username = $1
	`, u.Username); err != nil {
		return mapErr(err)
	}
	for _, role := range u.Roles {
		if err := r.q.QueryRowContext(ctx, `
			INSERT INTO roles (username, role) VALUES ($1,$2) RETURNING id
		`, u.Username, role.Name).Scan(&role.ID); err != nil {
			return mapErr(err)
		}
	}
	return nil
}
