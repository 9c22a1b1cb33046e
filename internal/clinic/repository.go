package clinic

import (
	"context"
	"errors"

	"petclinic-rest/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInUse: delete bloqueado por referencias existentes (fuera de cascada).
	ErrInUse = errors.New("still referenced")
)

// Save tiene semántica upsert: id == 0 inserta y asigna id; id != 0 sobreescribe.

type OwnerRepository interface {
	FindByID(ctx context.Context, id int) (*model.Owner, error)
	FindAll(ctx context.Context) ([]*model.Owner, error)
	// Prefijo case-insensitive sobre last name.
	FindByLastNamePrefix(ctx context.Context, prefix string) ([]*model.Owner, error)
	Save(ctx context.Context, o *model.Owner) error
	Delete(ctx context.Context, id int) error
}

type PetRepository interface {
	FindByID(ctx context.Context, id int) (*model.Pet, error)
	FindAll(ctx context.Context) ([]*model.Pet, error)
	FindByTypeID(ctx context.Context, typeID int) ([]*model.Pet, error)
	Save(ctx context.Context, p *model.Pet) error
	Delete(ctx context.Context, id int) error
}

type PetTypeRepository interface {
	FindByID(ctx context.Context, id int) (*model.PetType, error)
	// FindAll devuelve los tipos ordenados por nombre.
	FindAll(ctx context.Context) ([]*model.PetType, error)
	Save(ctx context.Context, t *model.PetType) error
	Delete(ctx context.Context, id int) error
}

type VisitRepository interface {
	FindByID(ctx context.Context, id int) (*model.Visit, error)
	FindAll(ctx context.Context) ([]*model.Visit, error)
	FindByPetID(ctx context.Context, petID int) ([]*model.Visit, error)
	Save(ctx context.Context, v *model.Visit) error
	Delete(ctx context.Context, id int) error
}

type VetRepository interface {
	FindByID(ctx context.Context, id int) (*model.Vet, error)
	FindAll(ctx context.Context) ([]*model.Vet, error)
	Save(ctx context.Context, v *model.Vet) error
	Delete(ctx context.Context, id int) error
}

type SpecialtyRepository interface {
	FindByID(ctx context.Context, id int) (*model.Specialty, error)
	FindAll(ctx context.Context) ([]*model.Specialty, error)
	FindByNameIn(ctx context.Context, names []string) ([]*model.Specialty, error)
	Save(ctx context.Context, s *model.Specialty) error
	// Delete falla con ErrInUse si algún vet aún la referencia.
	Delete(ctx context.Context, id int) error
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Save(ctx context.Context, u *model.User) error
}

// Store agrupa los repos sobre un mismo backing store.
// InTx ejecuta fn contra una vista transaccional: o todo commitea o nada
// queda observable. Es el boundary que necesita la cascada de PetType.
type Store interface {
	Owners() OwnerRepository
	Pets() PetRepository
	PetTypes() PetTypeRepository
	Visits() VisitRepository
	Vets() VetRepository
	Specialties() SpecialtyRepository
	Users() UserRepository

	InTx(ctx context.Context, fn func(tx Store) error) error
}
