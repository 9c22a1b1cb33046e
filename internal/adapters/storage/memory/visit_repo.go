package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type visitRepo struct {
	s *Store
}

func (r *visitRepo) FindByID(ctx context.Context, id int) (*model.Visit, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.visits[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return hydrateVisit(r.s.t, row), nil
}

func (r *visitRepo) FindAll(ctx context.Context) ([]*model.Visit, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Visit, 0, len(r.s.t.visits))
	for _, row := range r.s.t.visits {
		out = append(out, hydrateVisit(r.s.t, row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *visitRepo) FindByPetID(ctx context.Context, petID int) ([]*model.Visit, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Visit, 0)
	for _, row := range r.s.t.visits {
		if row.PetID == petID {
			out = append(out, hydrateVisit(r.s.t, row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *visitRepo) Save(ctx context.Context, v *model.Visit) error {
	r.s.lock()
	defer r.s.unlock()

	if v.Pet == nil {
		return clinic.ErrInvalidInput
	}
	if v.IsNew() {
		v.ID = r.s.t.nextID("visits")
	}
	r.s.t.visits[v.ID] = visitRow{
		ID:          v.ID,
		Date:        v.Date,
		Description: v.Description,
		PetID:       v.Pet.ID,
	}
	return nil
}

func (r *visitRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.visits[id]; !ok {
		return clinic.ErrNotFound
	}
	delete(r.s.t.visits, id)
	return nil
}

func hydrateVisit(t *tables, row visitRow) *model.Visit {
	v := &model.Visit{
		ID:          row.ID,
		Date:        row.Date,
		Description: row.Description,
	}
	if pr, ok := t.pets[row.PetID]; ok {
		v.Pet = &model.Pet{ID: pr.ID, Name: pr.Name, BirthDate: pr.BirthDate}
	}
	return v
}
