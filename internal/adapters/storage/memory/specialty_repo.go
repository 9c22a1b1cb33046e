package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type specialtyRepo struct {
	s *Store
}

func (r *specialtyRepo) FindByID(ctx context.Context, id int) (*model.Specialty, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.specialties[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return &model.Specialty{ID: row.ID, Name: row.Name}, nil
}

func (r *specialtyRepo) FindAll(ctx context.Context) ([]*model.Specialty, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Specialty, 0, len(r.s.t.specialties))
	for _, row := range r.s.t.specialties {
		out = append(out, &model.Specialty{ID: row.ID, Name: row.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *specialtyRepo) FindByNameIn(ctx context.Context, names []string) ([]*model.Specialty, error) {
	r.s.rlock()
	defer r.s.runlock()

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	out := make([]*model.Specialty, 0)
	for _, row := range r.s.t.specialties {
		if _, ok := wanted[row.Name]; ok {
			out = append(out, &model.Specialty{ID: row.ID, Name: row.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *specialtyRepo) Save(ctx context.Context, sp *model.Specialty) error {
	r.s.lock()
	defer r.s.unlock()

	if sp.IsNew() {
		sp.ID = r.s.t.nextID("specialties")
	}
	r.s.t.specialties[sp.ID] = specialtyRow{ID: sp.ID, Name: sp.Name}
	return nil
}

func (r *specialtyRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.specialties[id]; !ok {
		return clinic.ErrNotFound
	}
	for _, ids := range r.s.t.vetSpecialties {
		for _, sid := range ids {
			if sid == id {
				return clinic.ErrInUse
			}
		}
	}
	delete(r.s.t.specialties, id)
	return nil
}
