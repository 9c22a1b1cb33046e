package api

import (
	"time"

	"petclinic-rest/internal/model"
)

// Fechas date-only en el contrato JSON (birthDate, date).
const dateLayout = "2006-01-02"

type petTypeRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type petTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ownerFieldsRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

type ownerResponse struct {
	ID        int           `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Address   string        `json:"address"`
	City      string        `json:"city"`
	Telephone string        `json:"telephone"`
	Pets      []petResponse `json:"pets"`
}

type petFieldsRequest struct {
	Name      string         `json:"name"`
	BirthDate string         `json:"birthDate"` // YYYY-MM-DD, opcional
	Type      petTypeRequest `json:"type"`
	OwnerID   int            `json:"ownerId"` // solo en POST /api/pets
}

type petResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	BirthDate string          `json:"birthDate,omitempty"`
	Type      petTypeResponse `json:"type"`
	OwnerID   int             `json:"ownerId"`
	Visits    []visitResponse `json:"visits"`
}

type visitFieldsRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD, opcional (default hoy)
	Description string `json:"description"`
	PetID       int    `json:"petId"` // solo en POST /api/visits
}

type visitResponse struct {
	ID          int    `json:"id"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description"`
	PetID       int    `json:"petId"`
}

type specialtyRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type specialtyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type vetFieldsRequest struct {
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Specialties []specialtyRequest `json:"specialties"`
}

type vetResponse struct {
	ID          int                 `json:"id"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Specialties []specialtyResponse `json:"specialties"`
}

type roleRequest struct {
	Name string `json:"name"`
}

type userRequest struct {
	Username string        `json:"username"`
	Password string        `json:"password"`
	Enabled  bool          `json:"enabled"`
	Roles    []roleRequest `json:"roles"`
}

type userResponse struct {
	Username string   `json:"username"`
	Enabled  bool     `json:"enabled"`
	Roles    []string `json:"roles"`
}

func toOwnerResponse(o *model.Owner) ownerResponse {
	pets := o.Pets()
	out := ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
		Pets:      make([]petResponse, 0, len(pets)),
	}
	for _, p := range pets {
		out.Pets = append(out.Pets, toPetResponse(p))
	}
	return out
}

func toPetResponse(p *model.Pet) petResponse {
	out := petResponse{
		ID:     p.ID,
		Name:   p.Name,
		Visits: make([]visitResponse, 0),
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format(dateLayout)
	}
	if p.Type != nil {
		out.Type = petTypeResponse{ID: p.Type.ID, Name: p.Type.Name}
	}
	if p.Owner != nil {
		out.OwnerID = p.Owner.ID
	}
	for _, v := range p.VisitsSortedByDate() {
		vr := toVisitResponse(v)
		vr.PetID = p.ID
		out.Visits = append(out.Visits, vr)
	}
	return out
}

func toVisitResponse(v *model.Visit) visitResponse {
	out := visitResponse{
		ID:          v.ID,
		Description: v.Description,
	}
	if !v.Date.IsZero() {
		out.Date = v.Date.Format(dateLayout)
	}
	if v.Pet != nil {
		out.PetID = v.Pet.ID
	}
	return out
}

func toPetTypeResponse(t *model.PetType) petTypeResponse {
	return petTypeResponse{ID: t.ID, Name: t.Name}
}

func toSpecialtyResponse(s *model.Specialty) specialtyResponse {
	return specialtyResponse{ID: s.ID, Name: s.Name}
}

func toVetResponse(v *model.Vet) vetResponse {
	specs := v.Specialties()
	out := vetResponse{
		ID:          v.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Specialties: make([]specialtyResponse, 0, len(specs)),
	}
	for _, s := range specs {
		out.Specialties = append(out.Specialties, toSpecialtyResponse(s))
	}
	return out
}

func toUserResponse(u *model.User) userResponse {
	out := userResponse{
		Username: u.Username,
		Enabled:  u.Enabled,
		Roles:    make([]string, 0, len(u.Roles)),
	}
	for _, r := range u.Roles {
		out.Roles = append(out.Roles, r.Name)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
