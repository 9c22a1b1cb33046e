package postgres

import (
	"context"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type vetRepo struct {
	q querier
}

func (r *vetRepo) FindByID(ctx context.Context, id int) (*model.Vet, error) {
	var v model.Vet
	err := r.q.QueryRowContext(ctx, `
		SELECT id, first_name, last_name FROM vets WHERE id = $1
	`, id).Scan(&v.ID, &v.FirstName, &v.LastName)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := r.hydrateSpecialties(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vetRepo) FindAll(ctx context.Context) ([]*model.Vet, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, first_name, last_name FROM vets ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Vet, 0)
	for rows.Next() {
		var v model.Vet
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, v := range out {
		if err := r.hydrateSpecialties(ctx, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *vetRepo) Save(ctx context.Context, v *model.Vet) error {
	if v.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO vets (first_name, last_name)
			VALUES ($1,$2)
			RETURNING id
		`, v.FirstName, v.LastName).Scan(&v.ID)
		if err != nil {
			return mapErr(err)
		}
	} else {
		res, err := r.q.ExecContext(ctx, `
			UPDATE vets SET first_name = $2, last_name = $3 WHERE id = $1
		`, v.ID, v.FirstName, v.LastName)
		if err != nil {
			return mapErr(err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return clinic.ErrNotFound
		}
	}

	// Full replace del join de especialidades.
	if _, err := r.q.ExecContext(ctx, `
		DELETE FROM vet_specialties WHERE vet_id = $1
	`, v.ID); err != nil {
		return mapErr(err)
	}
	for _, sp := range v.Specialties() {
		if _, err := r.q.ExecContext(ctx, `
			INSERT INTO vet_specialties (vet_id, specialty_id) VALUES ($1,$2)
		`, v.ID, sp.ID); err != nil {
			return mapErr(err)
		}
	}
	return nil
}

func (r *vetRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.q.ExecContext(ctx, `
		DELETE FROM vet_specialties WHERE vet_id = $1
	`, id); err != nil {
		return mapErr(err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM vets WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *vetRepo) hydrateSpecialties(ctx context.Context, v *model.Vet) error {
	rows, err := r.q.QueryContext(ctx, `
		SELECT s.id, s.name
		FROM specialties s
		JOIN vet_specialties vs ON vs.specialty_id = s.id
		WHERE vs.vet_id = $1
		ORDER BY s.id ASC
	`, v.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	specs := make([]*model.Specialty, 0)
	for rows.Next() {
		var s model.Specialty
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return err
		}
		specs = append(specs, &s)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	v.SetSpecialties(specs)
	return nil
}
