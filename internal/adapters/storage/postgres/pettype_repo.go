package postgres

import (
	"context"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type petTypeRepo struct {
	q querier
}

func (r *petTypeRepo) FindByID(ctx context.Context, id int) (*model.PetType, error) {
	var t model.PetType
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name FROM types WHERE id = $1
	`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *petTypeRepo) FindAll(ctx context.Context) ([]*model.PetType, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name FROM types ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.PetType, 0)
	for rows.Next() {
		var t model.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *petTypeRepo) Save(ctx context.Context, t *model.PetType) error {
	if t.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO types (name) VALUES ($1) RETURNING id
		`, t.Name).Scan(&t.ID)
		return mapErr(err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE types SET name = $2 WHERE id = $1
	`, t.ID, t.Name)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *petTypeRepo) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM types WHERE id = $1`, id)
	if err != nil {
		// FK desde pets.type_id: sin cascada previa esto es un conflicto.
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}
