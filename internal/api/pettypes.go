package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/middleware"
	"petclinic-rest/internal/model"
	"petclinic-rest/internal/platform/logger"
)

func RegisterPetTypeRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/pettypes", func(tr chi.Router) {
		// Las lecturas sirven tanto a owner-admins (formularios de pets)
		// como a vet-admins; las mutaciones son solo de vet-admin.
		tr.Group(func(read chi.Router) {
			read.Use(middleware.RequireRoles(roleOwnerAdmin, roleVetAdmin))
			read.Get("/", listPetTypesHandler(svc, log))
			read.Get("/{petTypeID}", getPetTypeHandler(svc, log))
		})
		tr.Group(func(write chi.Router) {
			write.Use(middleware.RequireRoles(roleVetAdmin))
			write.Post("/", addPetTypeHandler(svc, log))
			write.Put("/{petTypeID}", updatePetTypeHandler(svc, log))
			write.Delete("/{petTypeID}", deletePetTypeHandler(svc, log))
		})
	})
}

// listPetTypesHandler godoc
// @Summary Listar pet types ordenados por nombre
// @Tags pettypes
// @Produce json
// @Success 200 {array} petTypeResponse
// @Router /api/pettypes [get]
func listPetTypesHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.FindAllPetTypes(r.Context())
		if err != nil {
			respondError(log, w, err)
			return
		}
		out := make([]petTypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, toPetTypeResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetTypeHandler godoc
// @Summary Obtener pet type por id
// @Tags pettypes
// @Produce json
// @Success 200 {object} petTypeResponse
// @Failure 404 {string} string "not found"
// @Router /api/pettypes/{petTypeID} [get]
func getPetTypeHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petTypeID")
		if !ok {
			return
		}
		t, err := svc.FindPetTypeByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetTypeResponse(t))
	}
}

// addPetTypeHandler godoc
// @Summary Crear pet type
// @Tags pettypes
// @Accept json
// @Produce json
// @Success 201 {object} petTypeResponse
// @Failure 400 {object} validationErrorBody
// @Router /api/pettypes [post]
func addPetTypeHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateNamed(req.Name); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		t := &model.PetType{Name: strings.TrimSpace(req.Name)}
		if err := svc.SavePetType(r.Context(), t); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/pettypes/%d", t.ID))
		writeJSON(w, http.StatusCreated, toPetTypeResponse(t))
	}
}

// updatePetTypeHandler godoc
// @Summary Actualizar pet type
// @Tags pettypes
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/pettypes/{petTypeID} [put]
func updatePetTypeHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petTypeID")
		if !ok {
			return
		}

		var req petTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateNamed(req.Name); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		t, err := svc.FindPetTypeByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		t.Name = strings.TrimSpace(req.Name)

		if err := svc.SavePetType(r.Context(), t); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deletePetTypeHandler godoc
// @Summary Borrar pet type (cascadea pets del tipo y sus visits)
// @Tags pettypes
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/pettypes/{petTypeID} [delete]
func deletePetTypeHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "petTypeID")
		if !ok {
			return
		}
		if err := svc.DeletePetType(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
