package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic-rest/internal/clinic"
)

// Store implementa clinic.Store sobre database/sql. Todos los repos
// comparten el mismo querier, que es el pool o una transacción abierta.
type Store struct {
	db *sql.DB
	q  querier
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Owners() clinic.OwnerRepository          { return &ownerRepo{q: s.q} }
func (s *Store) Pets() clinic.PetRepository              { return &petRepo{q: s.q} }
func (s *Store) PetTypes() clinic.PetTypeRepository      { return &petTypeRepo{q: s.q} }
func (s *Store) Visits() clinic.VisitRepository          { return &visitRepo{q: s.q} }
func (s *Store) Vets() clinic.VetRepository              { return &vetRepo{q: s.q} }
func (s *Store) Specialties() clinic.SpecialtyRepository { return &specialtyRepo{q: s.q} }
func (s *Store) Users() clinic.UserRepository            { return &userRepo{q: s.q} }

// InTx ejecuta fn dentro de una transacción. Si ya estamos dentro de una,
// reusa la transacción abierta (sin savepoints; no hacen falta aquí).
func (s *Store) InTx(ctx context.Context, fn func(tx clinic.Store) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	staged := &Store{db: s.db, q: tx}
	if err := fn(staged); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
