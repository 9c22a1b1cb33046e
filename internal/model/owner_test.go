package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnerAddPetSetsBackReference(t *testing.T) {
	o := &Owner{ID: 1, FirstName: "Sherlock", LastName: "Holmes"}
	p := &Pet{Name: "Leo"}

	o.AddPet(p)

	require.Same(t, o, p.Owner)
	require.Len(t, o.Pets(), 1)
}

func TestOwnerPetsSortedByName(t *testing.T) {
	o := &Owner{ID: 1}
	o.AddPet(&Pet{ID: 3, Name: "rex"})
	o.AddPet(&Pet{ID: 1, Name: "Basil"})
	o.AddPet(&Pet{ID: 2, Name: "Leo"})

	names := make([]string, 0, 3)
	for _, p := range o.Pets() {
		names = append(names, p.Name)
	}
	// orden por byte: mayúsculas antes que minúsculas
	require.Equal(t, []string{"Basil", "Leo", "rex"}, names)
}

func TestOwnerPetsReturnsCopy(t *testing.T) {
	o := &Owner{ID: 1}
	o.AddPet(&Pet{ID: 1, Name: "Leo"})

	view := o.Pets()
	view[0] = nil

	require.NotNil(t, o.Pets()[0])
}

func TestOwnerPetByName(t *testing.T) {
	o := &Owner{ID: 1}
	o.AddPet(&Pet{ID: 1, Name: "Leo"})

	require.NotNil(t, o.PetByName("leo")) // case-insensitive
	require.NotNil(t, o.PetByName("LEO"))
	require.Nil(t, o.PetByName("Le")) // prefijo no alcanza
	require.Nil(t, o.PetByName("Rex"))
}

func TestOwnerPetByID(t *testing.T) {
	o := &Owner{ID: 1}
	o.AddPet(&Pet{ID: 7, Name: "Leo"})

	require.NotNil(t, o.PetByID(7))
	require.Nil(t, o.PetByID(8))
}

func TestOwnerIsNew(t *testing.T) {
	require.True(t, (&Owner{}).IsNew())
	require.False(t, (&Owner{ID: 1}).IsNew())
}
