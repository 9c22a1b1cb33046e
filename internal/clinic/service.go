package clinic

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petclinic-rest/internal/model"
)

const rolePrefix = "ROLE_"

// Service es la fachada única sobre todos los stores: compone llamadas a repos,
// traduce ausencias a ErrNotFound y aplica los invariantes multi-entidad
// (resolución de pet type, cascadas, resolución de especialidades).
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// -------------------------
// Owners
// -------------------------

func (s *Service) FindOwnerByID(ctx context.Context, id int) (*model.Owner, error) {
	return s.store.Owners().FindByID(ctx, id)
}

func (s *Service) FindAllOwners(ctx context.Context) ([]*model.Owner, error) {
	return s.store.Owners().FindAll(ctx)
}

func (s *Service) FindOwnersByLastName(ctx context.Context, lastName string) ([]*model.Owner, error) {
	return s.store.Owners().FindByLastNamePrefix(ctx, lastName)
}

func (s *Service) SaveOwner(ctx context.Context, o *model.Owner) error {
	return s.store.Owners().Save(ctx, o)
}

// DeleteOwner borra al owner y, en cascada, sus pets con sus visits.
// Todo dentro de una sola transacción.
func (s *Service) DeleteOwner(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(tx Store) error {
		o, err := tx.Owners().FindByID(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range o.Pets() {
			if err := deletePetCascading(ctx, tx, p.ID); err != nil {
				return err
			}
		}
		return tx.Owners().Delete(ctx, o.ID)
	})
}

// -------------------------
// Pets
// -------------------------

func (s *Service) FindPetByID(ctx context.Context, id int) (*model.Pet, error) {
	return s.store.Pets().FindByID(ctx, id)
}

func (s *Service) FindAllPets(ctx context.Context) ([]*model.Pet, error) {
	return s.store.Pets().FindAll(ctx)
}

// SavePet re-resuelve el pet type contra el store por id antes de delegar.
// Garantiza que un pet nunca persiste con una referencia stale a un type.
func (s *Service) SavePet(ctx context.Context, p *model.Pet) error {
	if p.Type == nil {
		return ErrInvalidInput
	}
	t, err := s.store.PetTypes().FindByID(ctx, p.Type.ID)
	if err != nil {
		return err
	}
	p.Type = t
	return s.store.Pets().Save(ctx, p)
}

// DeletePet borra al pet y sus visits en una sola transacción.
func (s *Service) DeletePet(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(tx Store) error {
		if _, err := tx.Pets().FindByID(ctx, id); err != nil {
			return err
		}
		return deletePetCascading(ctx, tx, id)
	})
}

func deletePetCascading(ctx context.Context, tx Store, petID int) error {
	visits, err := tx.Visits().FindByPetID(ctx, petID)
	if err != nil {
		return err
	}
	for _, v := range visits {
		if err := tx.Visits().Delete(ctx, v.ID); err != nil {
			return err
		}
	}
	return tx.Pets().Delete(ctx, petID)
}

// -------------------------
// Pet types
// -------------------------

func (s *Service) FindPetTypeByID(ctx context.Context, id int) (*model.PetType, error) {
	return s.store.PetTypes().FindByID(ctx, id)
}

func (s *Service) FindAllPetTypes(ctx context.Context) ([]*model.PetType, error) {
	return s.store.PetTypes().FindAll(ctx)
}

func (s *Service) SavePetType(ctx context.Context, t *model.PetType) error {
	return s.store.PetTypes().Save(ctx, t)
}

// DeletePetType es la única operación multi-paso no trivial del sistema:
// 1) resuelve el type, 2) encuentra los pets que lo referencian,
// 3) borra cada pet con sus visits, 4) borra el type.
// Los cuatro pasos commitean o se deshacen juntos; un estado parcial
// nunca es observable por lecturas posteriores.
func (s *Service) DeletePetType(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(tx Store) error {
		t, err := tx.PetTypes().FindByID(ctx, id)
		if err != nil {
			return err
		}
		pets, err := tx.Pets().FindByTypeID(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, p := range pets {
			if err := deletePetCascading(ctx, tx, p.ID); err != nil {
				return err
			}
		}
		return tx.PetTypes().Delete(ctx, t.ID)
	})
}

// -------------------------
// Visits
// -------------------------

func (s *Service) FindVisitByID(ctx context.Context, id int) (*model.Visit, error) {
	return s.store.Visits().FindByID(ctx, id)
}

func (s *Service) FindAllVisits(ctx context.Context) ([]*model.Visit, error) {
	return s.store.Visits().FindAll(ctx)
}

func (s *Service) FindVisitsByPetID(ctx context.Context, petID int) ([]*model.Visit, error) {
	return s.store.Visits().FindByPetID(ctx, petID)
}

// SaveVisit aplica el default de fecha: si viene zero, se registra "hoy".
func (s *Service) SaveVisit(ctx context.Context, v *model.Visit) error {
	if v.Date.IsZero() {
		v.Date = s.now()
	}
	return s.store.Visits().Save(ctx, v)
}

func (s *Service) DeleteVisit(ctx context.Context, id int) error {
	if _, err := s.store.Visits().FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Visits().Delete(ctx, id)
}

// -------------------------
// Vets
// -------------------------

func (s *Service) FindVetByID(ctx context.Context, id int) (*model.Vet, error) {
	return s.store.Vets().FindByID(ctx, id)
}

func (s *Service) FindAllVets(ctx context.Context) ([]*model.Vet, error) {
	return s.store.Vets().FindAll(ctx)
}

// SaveVet re-resuelve las especialidades por nombre contra el store canónico,
// para persistir referencias a filas existentes y no copias transientes del
// caller. Con cero especialidades se salta la resolución. Nombres que no
// existen en el catálogo se descartan.
func (s *Service) SaveVet(ctx context.Context, v *model.Vet) error {
	if v.NrOfSpecialties() > 0 {
		resolved, err := s.store.Specialties().FindByNameIn(ctx, v.SpecialtyNames())
		if err != nil {
			return err
		}
		v.SetSpecialties(resolved)
	}
	return s.store.Vets().Save(ctx, v)
}

func (s *Service) DeleteVet(ctx context.Context, id int) error {
	if _, err := s.store.Vets().FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Vets().Delete(ctx, id)
}

// -------------------------
// Specialties
// -------------------------

func (s *Service) FindSpecialtyByID(ctx context.Context, id int) (*model.Specialty, error) {
	return s.store.Specialties().FindByID(ctx, id)
}

func (s *Service) FindAllSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	return s.store.Specialties().FindAll(ctx)
}

func (s *Service) FindSpecialtiesByNameIn(ctx context.Context, names []string) ([]*model.Specialty, error) {
	return s.store.Specialties().FindByNameIn(ctx, names)
}

func (s *Service) SaveSpecialty(ctx context.Context, sp *model.Specialty) error {
	return s.store.Specialties().Save(ctx, sp)
}

// DeleteSpecialty no cascadea: si un vet aún la referencia, el repo
// devuelve ErrInUse y eso sube como conflicto al caller.
func (s *Service) DeleteSpecialty(ctx context.Context, id int) error {
	if _, err := s.store.Specialties().FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Specialties().Delete(ctx, id)
}

// -------------------------
// Users
// -------------------------

// SaveUser exige al menos un rol, normaliza el prefijo ROLE_, fija las
// back-references y hashea el password con bcrypt (si no viene ya hasheado).
func (s *Service) SaveUser(ctx context.Context, u *model.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrInvalidInput
	}
	if len(u.Roles) == 0 {
		return ErrInvalidInput
	}
	for _, r := range u.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return ErrInvalidInput
		}
		if !strings.HasPrefix(r.Name, rolePrefix) {
			r.Name = rolePrefix + r.Name
		}
		if r.User == nil {
			r.User = u
		}
	}

	if u.Password != "" && !isBcryptHash(u.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashed)
	}

	return s.store.Users().Save(ctx, u)
}

func (s *Service) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.store.Users().FindByUsername(ctx, username)
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
