package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/middleware"
	"petclinic-rest/internal/model"
	"petclinic-rest/internal/platform/logger"
)

const (
	roleOwnerAdmin = "OWNER_ADMIN"
	roleVetAdmin   = "VET_ADMIN"
	roleAdmin      = "ADMIN"
)

func RegisterOwnerRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/owners", func(or chi.Router) {
		or.Use(middleware.RequireRoles(roleOwnerAdmin))

		or.Get("/", listOwnersHandler(svc, log))
		or.Post("/", addOwnerHandler(svc, log))
		or.Get("/{ownerID}", getOwnerHandler(svc, log))
		or.Put("/{ownerID}", updateOwnerHandler(svc, log))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc, log))

		// Operaciones del agregado owner/pet/visit
		or.Post("/{ownerID}/pets", addPetToOwnerHandler(svc, log))
		or.Get("/{ownerID}/pets/{petID}", getOwnersPetHandler(svc, log))
		or.Put("/{ownerID}/pets/{petID}", updateOwnersPetHandler(svc, log))
		or.Post("/{ownerID}/pets/{petID}/visits", addVisitToOwnerHandler(svc, log))
	})
}

// listOwnersHandler godoc
// @Summary Listar owners
// @Description Lista todos los owners, o filtra por prefijo de apellido (case-insensitive) vía ?lastName=.
// @Tags owners
// @Produce json
// @Param lastName query string false "Prefijo de apellido"
// @Success 200 {array} ownerResponse
// @Router /api/owners [get]
func listOwnersHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			owners []*model.Owner
			err    error
		)
		if lastName := r.URL.Query().Get("lastName"); lastName != "" {
			owners, err = svc.FindOwnersByLastName(r.Context(), lastName)
		} else {
			owners, err = svc.FindAllOwners(r.Context())
		}
		if err != nil {
			respondError(log, w, err)
			return
		}

		out := make([]ownerResponse, 0, len(owners))
		for _, o := range owners {
			out = append(out, toOwnerResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getOwnerHandler godoc
// @Summary Obtener owner por id
// @Tags owners
// @Produce json
// @Success 200 {object} ownerResponse
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID} [get]
func getOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}
		o, err := svc.FindOwnerByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// addOwnerHandler godoc
// @Summary Crear owner
// @Tags owners
// @Accept json
// @Produce json
// @Success 201 {object} ownerResponse
// @Failure 400 {object} validationErrorBody
// @Router /api/owners [post]
func addOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateOwnerFields(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		o := &model.Owner{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Address:   strings.TrimSpace(req.Address),
			City:      strings.TrimSpace(req.City),
			Telephone: req.Telephone,
		}
		if err := svc.SaveOwner(r.Context(), o); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/owners/%d", o.ID))
		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

// updateOwnerHandler godoc
// @Summary Actualizar owner
// @Tags owners
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID} [put]
func updateOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}

		var req ownerFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateOwnerFields(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		current, err := svc.FindOwnerByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		current.FirstName = strings.TrimSpace(req.FirstName)
		current.LastName = strings.TrimSpace(req.LastName)
		current.Address = strings.TrimSpace(req.Address)
		current.City = strings.TrimSpace(req.City)
		current.Telephone = req.Telephone

		if err := svc.SaveOwner(r.Context(), current); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteOwnerHandler godoc
// @Summary Borrar owner (cascadea sus pets y visits)
// @Tags owners
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID} [delete]
func deleteOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}
		if err := svc.DeleteOwner(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addPetToOwnerHandler godoc
// @Summary Agregar pet a un owner
// @Tags owners
// @Accept json
// @Produce json
// @Success 201 {object} petResponse
// @Failure 400 {object} validationErrorBody
// @Failure 404 {string} string "owner o pet type inexistente"
// @Router /api/owners/{ownerID}/pets [post]
func addPetToOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}

		var req petFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validatePetFields(req, time.Now()); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		owner, err := svc.FindOwnerByID(r.Context(), ownerID)
		if err != nil {
			respondError(log, w, err)
			return
		}

		pet := &model.Pet{
			Name: strings.TrimSpace(req.Name),
			Type: &model.PetType{ID: req.Type.ID},
		}
		if strings.TrimSpace(req.BirthDate) != "" {
			bd, _ := parseDate(req.BirthDate)
			pet.BirthDate = bd
		}
		owner.AddPet(pet)

		if err := svc.SavePet(r.Context(), pet); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/pets/%d", pet.ID))
		writeJSON(w, http.StatusCreated, toPetResponse(pet))
	}
}

// getOwnersPetHandler godoc
// @Summary Obtener un pet del owner
// @Tags owners
// @Produce json
// @Success 200 {object} petResponse
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID}/pets/{petID} [get]
func getOwnersPetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}
		petID, ok := urlID(w, r, "petID")
		if !ok {
			return
		}

		owner, err := svc.FindOwnerByID(r.Context(), ownerID)
		if err != nil {
			respondError(log, w, err)
			return
		}
		pet := owner.PetByID(petID)
		if pet == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(pet))
	}
}

// updateOwnersPetHandler godoc
// @Summary Actualizar un pet del owner
// @Tags owners
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID}/pets/{petID} [put]
func updateOwnersPetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}
		petID, ok := urlID(w, r, "petID")
		if !ok {
			return
		}

		var req petFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validatePetFields(req, time.Now()); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		owner, err := svc.FindOwnerByID(r.Context(), ownerID)
		if err != nil {
			respondError(log, w, err)
			return
		}
		pet := owner.PetByID(petID)
		if pet == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		pet.Name = strings.TrimSpace(req.Name)
		pet.Type = &model.PetType{ID: req.Type.ID}
		if strings.TrimSpace(req.BirthDate) != "" {
			bd, _ := parseDate(req.BirthDate)
			pet.BirthDate = bd
		}

		if err := svc.SavePet(r.Context(), pet); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addVisitToOwnerHandler godoc
// @Summary Registrar visita para un pet del owner
// @Tags owners
// @Accept json
// @Produce json
// @Success 201 {object} visitResponse
// @Failure 400 {object} validationErrorBody
// @Failure 404 {string} string "not found"
// @Router /api/owners/{ownerID}/pets/{petID}/visits [post]
func addVisitToOwnerHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := urlID(w, r, "ownerID")
		if !ok {
			return
		}
		petID, ok := urlID(w, r, "petID")
		if !ok {
			return
		}

		var req visitFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateVisitFields(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		owner, err := svc.FindOwnerByID(r.Context(), ownerID)
		if err != nil {
			respondError(log, w, err)
			return
		}
		pet := owner.PetByID(petID)
		if pet == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		visit := &model.Visit{Description: strings.TrimSpace(req.Description)}
		if strings.TrimSpace(req.Date) != "" {
			d, _ := parseDate(req.Date)
			visit.Date = d
		}
		pet.AddVisit(visit)

		if err := svc.SaveVisit(r.Context(), visit); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/visits/%d", visit.ID))
		writeJSON(w, http.StatusCreated, toVisitResponse(visit))
	}
}

// urlID parsea un path param numérico; escribe 400 si no es un entero.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
