package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type petTypeRepo struct {
	s *Store
}

func (r *petTypeRepo) FindByID(ctx context.Context, id int) (*model.PetType, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.petTypes[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return &model.PetType{ID: row.ID, Name: row.Name}, nil
}

func (r *petTypeRepo) FindAll(ctx context.Context) ([]*model.PetType, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.PetType, 0, len(r.s.t.petTypes))
	for _, row := range r.s.t.petTypes {
		out = append(out, &model.PetType{ID: row.ID, Name: row.Name})
	}
	// El listado de tipos va ordenado por nombre.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *petTypeRepo) Save(ctx context.Context, t *model.PetType) error {
	r.s.lock()
	defer r.s.unlock()

	if t.IsNew() {
		t.ID = r.s.t.nextID("pet_types")
	}
	r.s.t.petTypes[t.ID] = petTypeRow{ID: t.ID, Name: t.Name}
	return nil
}

func (r *petTypeRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.petTypes[id]; !ok {
		return clinic.ErrNotFound
	}
	for _, p := range r.s.t.pets {
		if p.TypeID == id {
			return clinic.ErrInUse
		}
	}
	delete(r.s.t.petTypes, id)
	return nil
}
