// Package memory implementa el clinic.Store sobre maps en proceso.
// Sirve para dev y tests; mismo contrato que el adapter de postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"petclinic-rest/internal/clinic"
)

// Filas planas por tabla, igual que en el esquema relacional. Los repos
// rearman los agregados (owner con pets con visits) en cada lectura, así
// cada caller recibe un snapshot independiente.
type ownerRow struct {
	ID        int
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}

type petRow struct {
	ID        int
	Name      string
	BirthDate time.Time
	TypeID    int
	OwnerID   int
}

type petTypeRow struct {
	ID   int
	Name string
}

type visitRow struct {
	ID          int
	Date        time.Time
	Description string
	PetID       int
}

type vetRow struct {
	ID        int
	FirstName string
	LastName  string
}

type specialtyRow struct {
	ID   int
	Name string
}

type userRow struct {
	Username string
	Password string
	Enabled  bool
}

type roleRow struct {
	ID       int
	Username string
	Name     string
}

type tables struct {
	owners      map[int]ownerRow
	pets        map[int]petRow
	petTypes    map[int]petTypeRow
	visits      map[int]visitRow
	vets        map[int]vetRow
	specialties map[int]specialtyRow
	// vetID -> specialtyIDs (join many-to-many)
	vetSpecialties map[int][]int
	users          map[string]userRow
	roles          map[int]roleRow

	seq map[string]int
}

func newTables() *tables {
	return &tables{
		owners:         map[int]ownerRow{},
		pets:           map[int]petRow{},
		petTypes:       map[int]petTypeRow{},
		visits:         map[int]visitRow{},
		vets:           map[int]vetRow{},
		specialties:    map[int]specialtyRow{},
		vetSpecialties: map[int][]int{},
		users:          map[string]userRow{},
		roles:          map[int]roleRow{},
		seq:            map[string]int{},
	}
}

func (t *tables) nextID(table string) int {
	t.seq[table]++
	return t.seq[table]
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.owners {
		c.owners[k] = v
	}
	for k, v := range t.pets {
		c.pets[k] = v
	}
	for k, v := range t.petTypes {
		c.petTypes[k] = v
	}
	for k, v := range t.visits {
		c.visits[k] = v
	}
	for k, v := range t.vets {
		c.vets[k] = v
	}
	for k, v := range t.specialties {
		c.specialties[k] = v
	}
	for k, v := range t.vetSpecialties {
		ids := make([]int, len(v))
		copy(ids, v)
		c.vetSpecialties[k] = ids
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.roles {
		c.roles[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

// Store comparte las tablas entre todos los repos; un solo RWMutex protege
// el conjunto. Dentro de una transacción el lock ya está tomado y los repos
// operan sobre una copia staged, por eso inTx desactiva el locking interno.
type Store struct {
	mu   *sync.RWMutex
	t    *tables
	inTx bool
}

func NewStore() *Store {
	return &Store{
		mu: &sync.RWMutex{},
		t:  newTables(),
	}
}

func (s *Store) Owners() clinic.OwnerRepository           { return &ownerRepo{s: s} }
func (s *Store) Pets() clinic.PetRepository               { return &petRepo{s: s} }
func (s *Store) PetTypes() clinic.PetTypeRepository       { return &petTypeRepo{s: s} }
func (s *Store) Visits() clinic.VisitRepository           { return &visitRepo{s: s} }
func (s *Store) Vets() clinic.VetRepository               { return &vetRepo{s: s} }
func (s *Store) Specialties() clinic.SpecialtyRepository  { return &specialtyRepo{s: s} }
func (s *Store) Users() clinic.UserRepository             { return &userRepo{s: s} }

// InTx: copy-on-write. fn corre contra un clon de las tablas; si retorna nil
// el clon reemplaza al estado visible en un solo paso. Un fallo a mitad de
// cascada deja el store exactamente como estaba.
func (s *Store) InTx(ctx context.Context, fn func(tx clinic.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &Store{mu: s.mu, t: s.t.clone(), inTx: true}
	if err := fn(staged); err != nil {
		return err
	}
	s.t = staged.t
	return nil
}

func (s *Store) rlock() {
	if !s.inTx {
		s.mu.RLock()
	}
}

func (s *Store) runlock() {
	if !s.inTx {
		s.mu.RUnlock()
	}
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}
