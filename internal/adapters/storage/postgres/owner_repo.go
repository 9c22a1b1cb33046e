package postgres

import (
	"context"
	"database/sql"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type ownerRepo struct {
	q querier
}

const ownerColumns = `id, first_name, last_name, address, city, telephone`

func (r *ownerRepo) FindByID(ctx context.Context, id int) (*model.Owner, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE id = $1
	`, id)

	o, err := scanOwner(row)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := hydrateOwnerPets(ctx, r.q, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ownerRepo) FindAll(ctx context.Context) ([]*model.Owner, error) {
	return r.queryOwners(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		ORDER BY id ASC
	`)
}

func (r *ownerRepo) FindByLastNamePrefix(ctx context.Context, prefix string) ([]*model.Owner, error) {
	return r.queryOwners(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE lower(last_name) LIKE lower($1) || '%'
		ORDER BY id ASC
	`, prefix)
}

func (r *ownerRepo) Save(ctx context.Context, o *model.Owner) error {
	if o.IsNew() {
		err := r.q.QueryRowContext(ctx, `
			INSERT INTO owners (first_name, last_name, address, city, telephone)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone).Scan(&o.ID)
		return mapErr(err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE owners
		SET first_name = $2, last_name = $3, address = $4, city = $5, telephone = $6
		WHERE id = $1
	`, o.ID, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinic.ErrNotFound
	}
	return nil
}

func (r *ownerRepo) queryOwners(ctx context.Context, query string, args ...any) ([]*model.Owner, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range out {
		if err := hydrateOwnerPets(ctx, r.q, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(rs rowScanner) (*model.Owner, error) {
	var o model.Owner
	if err := rs.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
		return nil, err
	}
	return &o, nil
}

// hydrateOwnerPets carga el agregado completo: pets con su type y sus visits.
func hydrateOwnerPets(ctx context.Context, q querier, o *model.Owner) error {
	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN types t ON t.id = p.type_id
		WHERE p.owner_id = $1
		ORDER BY p.id ASC
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	pets := make([]*model.Pet, 0)
	for rows.Next() {
		var p model.Pet
		var bd sql.NullTime
		var t model.PetType
		if err := rows.Scan(&p.ID, &p.Name, &bd, &t.ID, &t.Name); err != nil {
			return err
		}
		p.BirthDate = fromNullDate(bd)
		p.Type = &t
		pets = append(pets, &p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range pets {
		visits, err := queryVisitsByPet(ctx, q, p.ID)
		if err != nil {
			return err
		}
		p.SetVisits(visits)
	}
	o.SetPets(pets)
	return nil
}
