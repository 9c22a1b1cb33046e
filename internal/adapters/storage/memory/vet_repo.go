package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type vetRepo struct {
	s *Store
}

func (r *vetRepo) FindByID(ctx context.Context, id int) (*model.Vet, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.vets[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return hydrateVet(r.s.t, row), nil
}

func (r *vetRepo) FindAll(ctx context.Context) ([]*model.Vet, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Vet, 0, len(r.s.t.vets))
	for _, row := range r.s.t.vets {
		out = append(out, hydrateVet(r.s.t, row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *vetRepo) Save(ctx context.Context, v *model.Vet) error {
	r.s.lock()
	defer r.s.unlock()

	if v.IsNew() {
		v.ID = r.s.t.nextID("vets")
	}
	r.s.t.vets[v.ID] = vetRow{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
	}

	// Full replace del join: el update de especialidades no es merge.
	ids := make([]int, 0, v.NrOfSpecialties())
	for _, sp := range v.Specialties() {
		ids = append(ids, sp.ID)
	}
	r.s.t.vetSpecialties[v.ID] = ids
	return nil
}

func (r *vetRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.vets[id]; !ok {
		return clinic.ErrNotFound
	}
	// Las filas del join son propiedad del vet: caen con él.
	delete(r.s.t.vetSpecialties, id)
	delete(r.s.t.vets, id)
	return nil
}

func hydrateVet(t *tables, row vetRow) *model.Vet {
	v := &model.Vet{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}
	specs := make([]*model.Specialty, 0)
	for _, sid := range t.vetSpecialties[row.ID] {
		if sr, ok := t.specialties[sid]; ok {
			specs = append(specs, &model.Specialty{ID: sr.ID, Name: sr.Name})
		}
	}
	v.SetSpecialties(specs)
	return v
}
