package model

import (
	"sort"
	"time"
)

// PetType es referenciado (no poseído) por cero o más pets.
type PetType struct {
	ID   int
	Name string
}

func (t *PetType) IsNew() bool { return t.ID == 0 }

// Pet pertenece a exactamente un Owner y referencia exactamente un PetType.
// El set de visits es propiedad exclusiva del Pet.
type Pet struct {
	ID        int
	Name      string
	BirthDate time.Time // date-only; zero = sin registrar
	Type      *PetType
	Owner     *Owner // back-reference; la fija el Owner en AddPet

	visits []*Visit
}

func (p *Pet) IsNew() bool { return p.ID == 0 }

// AddVisit inserta la visita en el set del pet y fija la back-reference.
func (p *Pet) AddVisit(v *Visit) {
	if v == nil {
		return
	}
	v.Pet = p
	p.visits = append(p.visits, v)
}

// SetVisits reemplaza el set completo (hidratación desde el repo).
func (p *Pet) SetVisits(visits []*Visit) {
	p.visits = visits
	for _, v := range p.visits {
		if v != nil {
			v.Pet = p
		}
	}
}

// VisitsSortedByDate devuelve una copia ordenada por fecha descendente
// (la más reciente primero). Se recalcula en cada llamada.
func (p *Pet) VisitsSortedByDate() []*Visit {
	out := make([]*Visit, len(p.visits))
	copy(out, p.visits)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Visit referencia exactamente un Pet.
type Visit struct {
	ID          int
	Date        time.Time // date-only; si viene zero el servicio la fija a "hoy"
	Description string
	Pet         *Pet // back-reference; la fija el Pet en AddVisit
}

func (v *Visit) IsNew() bool { return v.ID == 0 }
