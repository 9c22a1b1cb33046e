package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/middleware"
	"petclinic-rest/internal/model"
	"petclinic-rest/internal/platform/logger"
)

func RegisterPetRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Use(middleware.RequireRoles(roleOwnerAdmin))

		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", addPetHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// listPetsHandler godoc
// @Summary Listar todos los pets
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /api/pets [get]
func listPetsHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pets, err := svc.FindAllPets(r.Context())
		if err != nil {
			respondError(log, w, err)
			return
		}
		out := make([]petResponse, 0, len(pets))
		for _, p := range pets {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addPetHandler godoc
// @Summary Crear pet referenciando a su owner por ownerId
// @Tags pets
// @Accept json
// @Produce json
// @Success 201 {object} petResponse
// @Failure 400 {object} validationErrorBody
// @Failure 404 {string} string "owner o pet type inexistente"
// @Router /api/pets [post]
func addPetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		errs := validatePetFields(req, time.Now())
		if req.OwnerID <= 0 {
			errs = append(errs, fieldError{Field: "ownerId", Message: "is required"})
		}
		if len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		owner, err := svc.FindOwnerByID(r.Context(), req.OwnerID)
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

// getPetHandler godoc
// @Summary Obtener pet por id
// @Tags pets
// @Produce json
// @Success 200 {object} petResponse
// @Failure 404 {string} string "not found"
// @Router /api/pets/{petID} [get]
func getPetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petID")
		if !ok {
			return
		}
		p, err := svc.FindPetByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar pet
// @Tags pets
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/pets/{petID} [put]
func updatePetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petID")
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

		pet, err := svc.FindPetByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
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

// deletePetHandler godoc
// @Summary Borrar pet (cascadea sus visits)
// @Tags pets
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/pets/{petID} [delete]
func deletePetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petID")
		if !ok {
			return
		}
		if err := svc.DeletePet(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
