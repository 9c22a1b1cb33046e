package postgres

import (
	"context"
	"database/sql"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type petRepo struct {
	q querier
}

const petSelect = `
	SELECT p.id, p.name, p.birth_date,
	       t.id, t.name,
	       o.id, o.first_name, o.last_name, o.address, o.city, o.telephone
	FROM pets p
	JOIN types t ON t.id = p.type_id
	JOIN owners o ON o.id = p.owner_id
`

func (r *petRepo) FindByID(ctx context.Context, id int) (*model.Pet, error) {
	row := r.q.QueryRowContext(ctx, petSelect+` WHERE p.id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return nil, mapErr(err)
	}
	visits, err := queryVisitsByPet(ctx, r.q, p.ID)
	if err != nil {
		return nil, err
	}
	p.SetVisits(visits)
	return p, nil
}

func (r *petRepo) FindAll(ctx context.Context) ([]*model.Pet, error) {
	return r.queryPets(ctx, petSelect+` ORDER BY p.id ASC`)
}

func (r *petRepo) FindByTypeID(ctx context.Context, typeID int) ([]*model.Pet, error) {
	return r.queryPets(ctx, petSelect+` WHERE p.type_id = $1 ORDER BY p.id ASC`, typeID)
}

func (r *petRepo) Save(ctx context.Context, p *model.Pet) error {
	if p.Type == nil || p.Owner == nil {
		return clinic.ErrInvalidInput
	}

	if p.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO pets (name, birth_date, type_id, owner_id)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, p.Name, toNullDate(p.BirthDate), p.Type.ID, p.Owner.ID).Scan(&p.ID)
		return mapErr(err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, birth_date = $3, type_id = $4, owner_id = $5
		WHERE id = $1
	`, p.ID, p.Name, toNullDate(p.BirthDate), p.Type.ID, p.Owner.ID)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *petRepo) queryPets(ctx context.Context, query string, args ...any) ([]*model.Pet, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range out {
		visits, err := queryVisitsByPet(ctx, r.q, p.ID)
		if err != nil {
			return nil, err
		}
		p.SetVisits(visits)
	}
	return out, nil
}

func scanPet(rs rowScanner) (*model.Pet, error) {
	var p model.Pet
	var bd sql.NullTime
	var t model.PetType
	var o model.Owner
	if err := rs.Scan(
		&p.ID, &p.Name, &bd,
		&t.ID, &t.Name,
		&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone,
	); err != nil {
		return nil, err
	}
	p.BirthDate = fromNullDate(bd)
	p.Type = &t
	p.Owner = &o
	return &p, nil
}

func queryVisitsByPet(ctx context.Context, q querier, petID int) ([]*model.Visit, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, visit_date, description
		FROM visits
		WHERE pet_id = $1
		ORDER BY id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Visit, 0)
	for rows.Next() {
		var v model.Visit
		var d sql.NullTime
		if err := rows.Scan(&v.ID, &d, &v.Description); err != nil {
			return nil, err
		}
		v.Date = fromNullDate(d)
		out = append(out, &v)
	}
	return out, rows.Err()
}
