package postgres

import (
	"context"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type specialtyRepo struct {
	q querier
}

func (r *specialtyRepo) FindByID(ctx context.Context, id int) (*model.Specialty, error) {
	var s model.Specialty
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name FROM specialties WHERE id = $1
	`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *specialtyRepo) FindAll(ctx context.Context) ([]*model.Specialty, error) {
	return r.query(ctx, `SELECT id, name FROM specialties ORDER BY id ASC`)
}

func (r *specialtyRepo) FindByNameIn(ctx context.Context, names []string) ([]*model.Specialty, error) {
	if len(names) == 0 {
		return []*model.Specialty{}, nil
	}
	return r.query(ctx, `
		SELECT id, name FROM specialties WHERE name = ANY($1) ORDER BY id ASC
	`, names)
}

func (r *specialtyRepo) Save(ctx context.Context, s *model.Specialty) error {
	if s.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO specialties (name) VALUES ($1) RETURNING id
		`, s.Name).Scan(&s.ID)
		return mapErr(err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE specialties SET name = $2 WHERE id = $1
	`, s.ID, s.Name)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *specialtyRepo) Delete(ctx context.Context, id int) error {
	// El FK desde vet_specialties convierte esto en ErrInUse vía mapErr.
	res, err := r.q.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *specialtyRepo) query(ctx context.Context, query string, args ...any) ([]*model.Specialty, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Specialty, 0)
	for rows.Next() {
		var s model.Specialty
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
