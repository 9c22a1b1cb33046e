package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

func TestOwnerSaveAssignsSequentialIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a := &model.Owner{FirstName: "Sherlock", LastName: "Holmes"}
	b := &model.Owner{FirstName: "John", LastName: "Watson"}
	require.NoError(t, s.Owners().Save(ctx, a))
	require.NoError(t, s.Owners().Save(ctx, b))

	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID)
}

func TestOwnerRoundTripHydratesAggregate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	cat := &model.PetType{Name: "cat"}
	require.NoError(t, s.PetTypes().Save(ctx, cat))

	owner := &model.Owner{FirstName: "Sherlock", LastName: "Holmes"}
	require.NoError(t, s.Owners().Save(ctx, owner))

	pet := &model.Pet{Name: "Leo", Type: cat}
	owner.AddPet(pet)
	require.NoError(t, s.Pets().Save(ctx, pet))

	visit := &model.Visit{Description: "rabies shot"}
	pet.AddVisit(visit)
	require.NoError(t, s.Visits().Save(ctx, visit))

	got, err := s.Owners().FindByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Pets(), 1)

	gotPet := got.Pets()[0]
	require.Equal(t, "Leo", gotPet.Name)
	require.Equal(t, "cat", gotPet.Type.Name)
	require.Same(t, got, gotPet.Owner)
	require.Len(t, gotPet.VisitsSortedByDate(), 1)
}

func TestOwnerSaveExistingOverwrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	owner := &model.Owner{FirstName: "Sherlock", LastName: "Holmes"}
	require.NoError(t, s.Owners().Save(ctx, owner))

	owner.Telephone = "6085559999"
	require.NoError(t, s.Owners().Save(ctx, owner))

	all, err := s.Owners().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "6085559999", all[0].Telephone)
}

func TestOwnerReadsAreIsolatedCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	owner := &model.Owner{FirstName: "Sherlock", LastName: "Holmes"}
	require.NoError(t, s.Owners().Save(ctx, owner))

	first, err := s.Owners().FindByID(ctx, owner.ID)
	require.NoError(t, err)
	first.LastName = "mutated"

	second, err := s.Owners().FindByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "Holmes", second.LastName)
}

func TestOwnerFindByLastNamePrefix(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Owners().Save(ctx, &model.Owner{LastName: "Holmes"}))
	require.NoError(t, s.Owners().Save(ctx, &model.Owner{LastName: "Holloway"}))
	require.NoError(t, s.Owners().Save(ctx, &model.Owner{LastName: "Watson"}))

	got, err := s.Owners().FindByLastNamePrefix(ctx, "HoL")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestOwnerDeleteWithPetsIsInUse(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	cat := &model.PetType{Name: "cat"}
	require.NoError(t, s.PetTypes().Save(ctx, cat))
	owner := &model.Owner{LastName: "Holmes"}
	require.NoError(t, s.Owners().Save(ctx, owner))
	pet := &model.Pet{Name: "Leo", Type: cat}
	owner.AddPet(pet)
	require.NoError(t, s.Pets().Save(ctx, pet))

	err := s.Owners().Delete(ctx, owner.ID)
	require.ErrorIs(t, err, clinic.ErrInUse)
}

func TestPetTypesSortedByName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, name := range []string{"snake", "cat", "dog"} {
		require.NoError(t, s.PetTypes().Save(ctx, &model.PetType{Name: name}))
	}

	got, err := s.PetTypes().FindAll(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, pt := range got {
		names = append(names, pt.Name)
	}
	require.Equal(t, []string{"cat", "dog", "snake"}, names)
}

func TestSpecialtyFindByNameIn(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, name := range []string{"radiology", "surgery", "dentistry"} {
		require.NoError(t, s.Specialties().Save(ctx, &model.Specialty{Name: name}))
	}

	got, err := s.Specialties().FindByNameIn(ctx, []string{"surgery", "astrology", "radiology"})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestVetSaveReplacesJoinRows(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rad := &model.Specialty{Name: "radiology"}
	sur := &model.Specialty{Name: "surgery"}
	require.NoError(t, s.Specialties().Save(ctx, rad))
	require.NoError(t, s.Specialties().Save(ctx, sur))

	vet := &model.Vet{FirstName: "Rafael", LastName: "Ortega"}
	vet.AddSpecialty(rad)
	require.NoError(t, s.Vets().Save(ctx, vet))

	vet.ClearSpecialties()
	vet.AddSpecialty(sur)
	require.NoError(t, s.Vets().Save(ctx, vet))

	got, err := s.Vets().FindByID(ctx, vet.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"surgery"}, got.SpecialtyNames())
}

func TestUserSaveReplacesRoles(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := &model.User{Username: "susan", Password: "hash", Enabled: true}
	u.AddRole("ROLE_OWNER_ADMIN")
	require.NoError(t, s.Users().Save(ctx, u))

	u.Roles = nil
	u.AddRole("ROLE_ADMIN")
	require.NoError(t, s.Users().Save(ctx, u))

	got, err := s.Users().FindByUsername(ctx, "susan")
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	require.Equal(t, "ROLE_ADMIN", got.Roles[0].Name)
}

func TestInTxDiscardsStagedStateOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	owner := &model.Owner{LastName: "Holmes"}
	require.NoError(t, s.Owners().Save(ctx, owner))

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx clinic.Store) error {
		if err := tx.Owners().Delete(ctx, owner.ID); err != nil {
			return err
		}
		if err := tx.Owners().Save(ctx, &model.Owner{LastName: "Watson"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Owners().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Holmes", got[0].LastName)
}

func TestInTxCommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.InTx(ctx, func(tx clinic.Store) error {
		return tx.Owners().Save(ctx, &model.Owner{LastName: "Holmes"})
	})
	require.NoError(t, err)

	got, err := s.Owners().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFindByIDUnknownIsNotFound(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Owners().FindByID(ctx, 42)
	require.ErrorIs(t, err, clinic.ErrNotFound)
	_, err = s.Pets().FindByID(ctx, 42)
	require.ErrorIs(t, err, clinic.ErrNotFound)
	_, err = s.Users().FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, clinic.ErrNotFound)
}
