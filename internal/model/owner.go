package model

import (
	"sort"
	"strings"
)

// Owner representa al dueño de una o más mascotas.
// El set de pets es propiedad exclusiva del Owner: solo se muta vía AddPet/SetPets,
// nunca directamente desde fuera del agregado.
type Owner struct {
	ID        int
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string

	pets []*Pet
}

func (o *Owner) IsNew() bool { return o.ID == 0 }

// AddPet inserta la mascota en el set del owner y fija la back-reference.
// No persiste nada por sí solo.
func (o *Owner) AddPet(p *Pet) {
	if p == nil {
		return
	}
	p.Owner = o
	o.pets = append(o.pets, p)
}

// SetPets reemplaza el set completo (hidratación desde el repo).
// Re-apunta las back-references para mantener el invariante pet.Owner == o.
func (o *Owner) SetPets(pets []*Pet) {
	o.pets = pets
	for _, p := range o.pets {
		if p != nil {
			p.Owner = o
		}
	}
}

// Pets devuelve una copia ordenada por nombre ascendente (case-sensitive).
// Se recalcula en cada llamada; mutar el slice devuelto no afecta al set.
func (o *Owner) Pets() []*Pet {
	out := make([]*Pet, len(o.pets))
	copy(out, o.pets)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// PetByID busca por id con scan lineal sobre el set.
func (o *Owner) PetByID(petID int) *Pet {
	for _, p := range o.pets {
		if p.ID == petID {
			return p
		}
	}
	return nil
}

// PetByName busca por nombre con igualdad estricta case-insensitive.
func (o *Owner) PetByName(name string) *Pet {
	for _, p := range o.pets {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}
