package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPetAddVisitSetsBackReference(t *testing.T) {
	p := &Pet{ID: 1, Name: "Leo"}
	v := &Visit{Description: "checkup"}

	p.AddVisit(v)

	require.Same(t, p, v.Pet)
}

func TestPetVisitsSortedByDateDescending(t *testing.T) {
	p := &Pet{ID: 1, Name: "Leo"}
	p.AddVisit(&Visit{ID: 1, Date: day("2024-01-10")})
	p.AddVisit(&Visit{ID: 2, Date: day("2024-05-02")})
	p.AddVisit(&Visit{ID: 3, Date: day("2024-03-15")})

	got := p.VisitsSortedByDate()
	require.Len(t, got, 3)
	require.Equal(t, 2, got[0].ID)
	require.Equal(t, 3, got[1].ID)
	require.Equal(t, 1, got[2].ID)
}

func TestVetSpecialtiesFullReplace(t *testing.T) {
	v := &Vet{ID: 1, FirstName: "Rafael", LastName: "Ortega"}
	v.AddSpecialty(&Specialty{ID: 1, Name: "radiology"})
	v.AddSpecialty(&Specialty{ID: 2, Name: "surgery"})
	require.Equal(t, 2, v.NrOfSpecialties())

	v.ClearSpecialties()
	v.AddSpecialty(&Specialty{ID: 3, Name: "dentistry"})

	require.Equal(t, 1, v.NrOfSpecialties())
	require.Equal(t, []string{"dentistry"}, v.SpecialtyNames())
}

func TestUserAddRole(t *testing.T) {
	u := &User{Username: "susan"}
	u.AddRole("ROLE_OWNER_ADMIN")

	require.Len(t, u.Roles, 1)
	require.Equal(t, "ROLE_OWNER_ADMIN", u.Roles[0].Name)
	require.Same(t, u, u.Roles[0].User)
}
