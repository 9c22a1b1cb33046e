package model

// Specialty es única por nombre en la práctica (no se fuerza a nivel de tipo).
type Specialty struct {
	ID   int
	Name string
}

func (s *Specialty) IsNew() bool { return s.ID == 0 }

// Vet mantiene un set de especialidades (many-to-many, sin orden).
type Vet struct {
	ID        int
	FirstName string
	LastName  string

	specialties []*Specialty
}

func (v *Vet) IsNew() bool { return v.ID == 0 }

func (v *Vet) AddSpecialty(s *Specialty) {
	if s == nil {
		return
	}
	v.specialties = append(v.specialties, s)
}

// ClearSpecialties vacía el set; update de vet es full replace, no merge.
func (v *Vet) ClearSpecialties() {
	v.specialties = nil
}

func (v *Vet) SetSpecialties(specs []*Specialty) {
	v.specialties = specs
}

// Specialties devuelve una copia del set.
func (v *Vet) Specialties() []*Specialty {
	out := make([]*Specialty, len(v.specialties))
	copy(out, v.specialties)
	return out
}

func (v *Vet) NrOfSpecialties() int { return len(v.specialties) }

// SpecialtyNames se usa para re-resolver contra el store canónico al guardar.
func (v *Vet) SpecialtyNames() []string {
	out := make([]string, 0, len(v.specialties))
	for _, s := range v.specialties {
		out = append(out, s.Name)
	}
	return out
}
