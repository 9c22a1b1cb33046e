package memory

import (
	"context"
	"sort"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) FindByID(ctx context.Context, id int) (*model.Pet, error) {
	r.s.rlock()
	defer r.s.runlock()

	row, ok := r.s.t.pets[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return hydratePet(r.s.t, row), nil
}

func (r *petRepo) FindAll(ctx context.Context) ([]*model.Pet, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Pet, 0, len(r.s.t.pets))
	for _, row := range r.s.t.pets {
		out = append(out, hydratePet(r.s.t, row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *petRepo) FindByTypeID(ctx context.Context, typeID int) ([]*model.Pet, error) {
	r.s.rlock()
	defer r.s.runlock()

	out := make([]*model.Pet, 0)
	for _, row := range r.s.t.pets {
		if row.TypeID == typeID {
			out = append(out, hydratePet(r.s.t, row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *petRepo) Save(ctx context.Context, p *model.Pet) error {
	r.s.lock()
	defer r.s.unlock()

	if p.Type == nil {
		return clinic.ErrInvalidInput
	}
	if p.IsNew() {
		p.ID = r.s.t.nextID("pets")
	}
	row := petRow{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate,
		TypeID:    p.Type.ID,
	}
	if p.Owner != nil {
		row.OwnerID = p.Owner.ID
	}
	r.s.t.pets[p.ID] = row
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id int) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.t.pets[id]; !ok {
		return clinic.ErrNotFound
	}
	for _, v := range r.s.t.visits {
		if v.PetID == id {
			return clinic.ErrInUse
		}
	}
	delete(r.s.t.pets, id)
	return nil
}

// hydratePet arma el pet con su type y sus visits. La back-reference al
// owner queda shallow (solo campos propios): alcanza para ownerId en las
// respuestas y evita rearmar el agregado entero en cada lectura de pet.
func hydratePet(t *tables, row petRow) *model.Pet {
	p := &model.Pet{
		ID:        row.ID,
		Name:      row.Name,
		BirthDate: row.BirthDate,
	}

	if tr, ok := t.petTypes[row.TypeID]; ok {
		p.Type = &model.PetType{ID: tr.ID, Name: tr.Name}
	}
	if or, ok := t.owners[row.OwnerID]; ok {
		p.Owner = &model.Owner{
			ID:        or.ID,
			FirstName: or.FirstName,
			LastName:  or.LastName,
			Address:   or.Address,
			City:      or.City,
			Telephone: or.Telephone,
		}
	}

	visits := make([]*model.Visit, 0)
	for _, vr := range t.visits {
		if vr.PetID == row.ID {
			visits = append(visits, &model.Visit{
				ID:          vr.ID,
				Date:        vr.Date,
				Description: vr.Description,
			})
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].ID < visits[j].ID })
	p.SetVisits(visits)
	return p
}
