package postgres

import (
	"context"
	"database/sql"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type visitRepo struct {
	q querier
}

func (r *visitRepo) FindByID(ctx context.Context, id int) (*model.Visit, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT v.id, v.visit_date, v.description,
		       p.id, p.name, p.birth_date
		FROM visits v
		JOIN pets p ON p.id = v.pet_id
		WHERE v.id = $1
	`, id)

	var v model.Visit
	var d, bd sql.NullTime
	var p model.Pet
	if err := row.Scan(&v.ID, &d, &v.Description, &p.ID, &p.Name, &bd); err != nil {
		return nil, mapErr(err)
	}
	v.Date = fromNullDate(d)
	p.BirthDate = fromNullDate(bd)
	v.Pet = &p
	return &v, nil
}

func (r *visitRepo) FindAll(ctx context.Context) ([]*model.Visit, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT v.id, v.visit_date, v.description,
		       p.id, p.name, p.birth_date
		FROM visits v
		JOIN pets p ON p.id = v.pet_id
		ORDER BY v.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Visit, 0)
	for rows.Next() {
		var v model.Visit
		var d, bd sql.NullTime
		var p model.Pet
		if err := rows.Scan(&v.ID, &d, &v.Description, &p.ID, &p.Name, &bd); err != nil {
			return nil, err
		}
		v.Date = fromNullDate(d)
		p.BirthDate = fromNullDate(bd)
		v.Pet = &p
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *visitRepo) FindByPetID(ctx context.Context, petID int) ([]*model.Visit, error) {
	return queryVisitsByPet(ctx, r.q, petID)
}

func (r *visitRepo) Save(ctx context.Context, v *model.Visit) error {
	if v.Pet == nil {
		return clinic.ErrInvalidInput
	}

	if v.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO visits (visit_date, description, pet_id)
			VALUES ($1,$2,$3)
			RETURNING id
		`, toNullDate(v.Date), v.Description, v.Pet.ID).Scan(&v.ID)
		return mapErr(err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE visits
		SET visit_date = $2, description = $3, pet_id = $4
		WHERE id = $1
	`, v.ID, toNullDate(v.Date), v.Description, v.Pet.ID)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *visitRepo) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}
