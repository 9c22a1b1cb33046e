package memory

import (
	"context"
	"sort"
	"strings"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type ownerRepo struct {
	s *Store
}

func (r *ownerRepo) FindByID(ctx context.Context, id int) (*model.Owner, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.owners[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return hydrateOwner(r.s.t, row), nil
}

func (r *ownerRepo) FindAll(ctx context.Context) ([]*model.Owner, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Owner, 0, len(r.s.t.owners))
	for _, row := range r.s.t.owners {
		out = append(out, hydrateOwner(r.s.t, row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ownerRepo) FindByLastNamePrefix(ctx context.Context, prefix string) ([]*model.Owner, error) {
	r.s.rlock()
	defer r.s.runlock()

	p := strings.ToLower(prefix)
	out := make([]*model.Owner, 0)
	for _, row := range r.s.t.owners {
		if strings.HasPrefix(strings.ToLower(row.LastName), p) {
			out = append(out, hydrateOwner(r.s.t, row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ownerRepo) Save(ctx context.Context, o *model.Owner) error {
	r.s.lock()
	defer r.s.unlock()

	if o.IsNew() {
		o.ID = r.s.t.nextID("owners")
	}
	r.s.t.owners[o.ID] = ownerRow{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
	}
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.owners[id]; !ok {
		return clinic.ErrNotFound
	}
	// Equivalente al FK de pets.owner_id: sin cascada previa, el delete falla.
	for _, p := range r.s.t.pets {
		if p.OwnerID == id {
			return clinic.ErrInUse
		}
	}
	delete(r.s.t.owners, id)
	return nil
}

// hydrateOwner rearma el agregado completo: owner -> pets -> visits/types.
// Siempre construye instancias frescas; nada de lo devuelto aliasea el store.
func hydrateOwner(t *tables, row ownerRow) *model.Owner {
	o := &model.Owner{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Address:   row.Address,
		City:      row.City,
		Telephone: row.Telephone,
	}

	pets := make([]*model.Pet, 0)
	for _, pr := range t.pets {
		if pr.OwnerID == row.ID {
			pets = append(pets, hydratePet(t, pr))
		}
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].ID < pets[j].ID })
	o.SetPets(pets)
	return o
}
