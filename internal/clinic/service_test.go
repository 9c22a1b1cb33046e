package clinic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petclinic-rest/internal/adapters/storage/memory"
	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/model"
)

func seedClinic(t *testing.T) (*clinic.Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	cat := &model.PetType{Name: "cat"}
	dog := &model.PetType{Name: "dog"}
	require.NoError(t, svc.SavePetType(ctx, cat))
	require.NoError(t, svc.SavePetType(ctx, dog))

	owner := &model.Owner{FirstName: "Sherlock", LastName: "Holmes", Address: "221B Baker Street", City: "London", Telephone: "6085551023"}
	require.NoError(t, svc.SaveOwner(ctx, owner))

	leo := &model.Pet{Name: "Leo", Type: cat}
	owner.AddPet(leo)
	require.NoError(t, svc.SavePet(ctx, leo))

	rex := &model.Pet{Name: "Rex", Type: dog}
	owner.AddPet(rex)
	require.NoError(t, svc.SavePet(ctx, rex))

	visit := &model.Visit{Description: "rabies shot"}
	leo.AddVisit(visit)
	require.NoError(t, svc.SaveVisit(ctx, visit))

	return svc, store
}

func TestSavePetResolvesTypeByID(t *testing.T) {
	svc, _ := seedClinic(t)
	ctx := context.Background()

	owner, err := svc.FindAllOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owner, 1)

	// el nombre que manda el cliente se ignora, gana el catálogo
	pet := owner[0].PetByName("Leo")
	require.NotNil(t, pet)
	pet.Type = &model.PetType{ID: pet.Type.ID, Name: "garbage"}
	require.NoError(t, svc.SavePet(ctx, pet))

	reloaded, err := svc.FindPetByID(ctx, pet.ID)
	require.NoError(t, err)
	require.Equal(t, "cat", reloaded.Type.Name)
}

func TestSavePetRequiresType(t *testing.T) {
	svc, _ := seedClinic(t)

	p := &model.Pet{Name: "Ghost"}
	err := svc.SavePet(context.Background(), p)
	require.ErrorIs(t, err, clinic.ErrInvalidInput)
}

func TestSavePetUnknownTypeIsNotFound(t *testing.T) {
	svc, _ := seedClinic(t)

	p := &model.Pet{Name: "Ghost", Type: &model.PetType{ID: 999}}
	err := svc.SavePet(context.Background(), p)
	require.ErrorIs(t, err, clinic.ErrNotFound)
}

func TestDeleteOwnerCascades(t *testing.T) {
	svc, _ := seedClinic(t)
	ctx := context.Background()

	owners, err := svc.FindAllOwners(ctx)
	require.NoError(t, err)
	ownerID := owners[0].ID

	require.NoError(t, svc.DeleteOwner(ctx, ownerID))

	_, err = svc.FindOwnerByID(ctx, ownerID)
	require.ErrorIs(t, err, clinic.ErrNotFound)

	pets, err := svc.FindAllPets(ctx)
	require.NoError(t, err)
	require.Empty(t, pets)

	visits, err := svc.FindAllVisits(ctx)
	require.NoError(t, err)
	require.Empty(t, visits)
}

func TestDeletePetTypeCascadesOnlyItsPets(t *testing.T) {
	svc, _ := seedClinic(t)
	ctx := context.Background()

	types, err := svc.FindAllPetTypes(ctx)
	require.NoError(t, err)
	var catID int
	for _, pt := range types {
		if pt.Name == "cat" {
			catID = pt.ID
		}
	}
	require.NotZero(t, catID)

	require.NoError(t, svc.DeletePetType(ctx, catID))

	// Leo (cat) y su visita se fueron, Rex (dog) sobrevive
	pets, err := svc.FindAllPets(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.Equal(t, "Rex", pets[0].Name)

	visits, err := svc.FindAllVisits(ctx)
	require.NoError(t, err)
	require.Empty(t, visits)

	// el owner sigue existiendo
	owners, err := svc.FindAllOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	require.Len(t, owners[0].Pets(), 1)
}

func TestDeletePetTypeWithoutPets(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	hamster := &model.PetType{Name: "hamster"}
	require.NoError(t, svc.SavePetType(ctx, hamster))

	require.NoError(t, svc.DeletePetType(ctx, hamster.ID))
	_, err := svc.FindPetTypeByID(ctx, hamster.ID)
	require.ErrorIs(t, err, clinic.ErrNotFound)
}

var errBoom = errors.New("boom")

type failingVisitRepo struct {
	clinic.VisitRepository
}

func (f failingVisitRepo) Delete(ctx context.Context, id int) error { return errBoom }

// failingStore inyecta un fallo en el delete de visitas, también dentro
// de transacciones, para verificar que las cascadas no dejan estado a medias.
type failingStore struct {
	clinic.Store
}

func (f failingStore) Visits() clinic.VisitRepository {
	return failingVisitRepo{f.Store.Visits()}
}

func (f failingStore) InTx(ctx context.Context, fn func(tx clinic.Store) error) error {
	return f.Store.InTx(ctx, func(tx clinic.Store) error {
		return fn(failingStore{tx})
	})
}

func TestDeletePetTypeCascadeIsAtomic(t *testing.T) {
	_, store := seedClinic(t)
	ctx := context.Background()

	broken := clinic.NewService(failingStore{store})

	types, err := store.PetTypes().FindAll(ctx)
	require.NoError(t, err)
	var catID int
	for _, pt := range types {
		if pt.Name == "cat" {
			catID = pt.ID
		}
	}

	err = broken.DeletePetType(ctx, catID)
	require.ErrorIs(t, err, errBoom)

	// nada se borró: ni el tipo, ni los pets, ni las visitas
	svc := clinic.NewService(store)
	_, err = svc.FindPetTypeByID(ctx, catID)
	require.NoError(t, err)

	pets, err := svc.FindAllPets(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 2)

	visits, err := svc.FindAllVisits(ctx)
	require.NoError(t, err)
	require.Len(t, visits, 1)
}

func TestSaveVetReplacesSpecialties(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	for _, name := range []string{"radiology", "surgery", "dentistry"} {
		require.NoError(t, svc.SaveSpecialty(ctx, &model.Specialty{Name: name}))
	}

	vet := &model.Vet{FirstName: "Rafael", LastName: "Ortega"}
	vet.AddSpecialty(&model.Specialty{Name: "radiology"})
	vet.AddSpecialty(&model.Specialty{Name: "surgery"})
	require.NoError(t, svc.SaveVet(ctx, vet))

	reloaded, err := svc.FindVetByID(ctx, vet.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"radiology", "surgery"}, reloaded.SpecialtyNames())

	// update reemplaza el set completo y resuelve IDs del catálogo
	reloaded.ClearSpecialties()
	reloaded.AddSpecialty(&model.Specialty{Name: "surgery"})
	reloaded.AddSpecialty(&model.Specialty{Name: "dentistry"})
	require.NoError(t, svc.SaveVet(ctx, reloaded))

	again, err := svc.FindVetByID(ctx, vet.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"surgery", "dentistry"}, again.SpecialtyNames())
	for _, sp := range again.Specialties() {
		require.NotZero(t, sp.ID)
	}
}

func TestSaveVetDropsUnknownSpecialtyNames(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.SaveSpecialty(ctx, &model.Specialty{Name: "surgery"}))

	vet := &model.Vet{FirstName: "Rafael", LastName: "Ortega"}
	vet.AddSpecialty(&model.Specialty{Name: "surgery"})
	vet.AddSpecialty(&model.Specialty{Name: "astrology"})
	require.NoError(t, svc.SaveVet(ctx, vet))

	reloaded, err := svc.FindVetByID(ctx, vet.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"surgery"}, reloaded.SpecialtyNames())
}

func TestDeleteSpecialtyInUse(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	sp := &model.Specialty{Name: "surgery"}
	require.NoError(t, svc.SaveSpecialty(ctx, sp))

	vet := &model.Vet{FirstName: "Rafael", LastName: "Ortega"}
	vet.AddSpecialty(&model.Specialty{Name: "surgery"})
	require.NoError(t, svc.SaveVet(ctx, vet))

	err := svc.DeleteSpecialty(ctx, sp.ID)
	require.ErrorIs(t, err, clinic.ErrInUse)

	require.NoError(t, svc.DeleteVet(ctx, vet.ID))
	require.NoError(t, svc.DeleteSpecialty(ctx, sp.ID))
}

func TestSaveVisitDefaultsDate(t *testing.T) {
	svc, _ := seedClinic(t)
	ctx := context.Background()

	pets, err := svc.FindAllPets(ctx)
	require.NoError(t, err)

	v := &model.Visit{Description: "checkup"}
	pets[0].AddVisit(v)
	require.NoError(t, svc.SaveVisit(ctx, v))

	reloaded, err := svc.FindVisitByID(ctx, v.ID)
	require.NoError(t, err)
	require.False(t, reloaded.Date.IsZero())
}

func TestSaveUserHashesPasswordAndNormalizesRoles(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)
	ctx := context.Background()

	u := &model.User{Username: "susan", Password: "s3cret", Enabled: true}
	u.AddRole("OWNER_ADMIN")
	require.NoError(t, svc.SaveUser(ctx, u))

	saved, err := svc.FindUserByUsername(ctx, "susan")
	require.NoError(t, err)
	require.Len(t, saved.Roles, 1)
	require.Equal(t, "ROLE_OWNER_ADMIN", saved.Roles[0].Name)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("s3cret")))

	// re-guardar con el hash ya aplicado no lo vuelve a hashear
	require.NoError(t, svc.SaveUser(ctx, saved))
	again, err := svc.FindUserByUsername(ctx, "susan")
	require.NoError(t, err)
	require.Equal(t, saved.Password, again.Password)
}

func TestSaveUserRequiresRoles(t *testing.T) {
	store := memory.NewStore()
	svc := clinic.NewService(store)

	u := &model.User{Username: "susan", Password: "s3cret"}
	err := svc.SaveUser(context.Background(), u)
	require.ErrorIs(t, err, clinic.ErrInvalidInput)
}

func TestFindOwnersByLastNamePrefix(t *testing.T) {
	svc, _ := seedClinic(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveOwner(ctx, &model.Owner{FirstName: "John", LastName: "Watson", Address: "221B Baker Street", City: "London", Telephone: "6085551024"}))

	got, err := svc.FindOwnersByLastName(ctx, "hol")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Holmes", got[0].LastName)

	none, err := svc.FindOwnersByLastName(ctx, "Zzz")
	require.NoError(t, err)
	require.Empty(t, none)
}
