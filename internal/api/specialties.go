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

func RegisterSpecialtyRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/specialties", func(sr chi.Router) {
		sr.Use(middleware.RequireRoles(roleVetAdmin))

		sr.Get("/", listSpecialtiesHandler(svc, log))
		sr.Post("/", addSpecialtyHandler(svc, log))
		sr.Get("/{specialtyID}", getSpecialtyHandler(svc, log))
		sr.Put("/{specialtyID}", updateSpecialtyHandler(svc, log))
		sr.Delete("/{specialtyID}", deleteSpecialtyHandler(svc, log))
	})
}

// listSpecialtiesHandler godoc
// @Summary Listar especialidades
// @Tags specialties
// @Produce json
// @Success 200 {array} specialtyResponse
// @Router /api/specialties [get]
func listSpecialtiesHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specs, err := svc.FindAllSpecialties(r.Context())
		if err != nil {
			respondError(log, w, err)
			return
		}
		out := make([]specialtyResponse, 0, len(specs))
		for _, sp := range specs {
			out = append(out, toSpecialtyResponse(sp))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getSpecialtyHandler godoc
// @Summary Obtener especialidad por id
// @Tags specialties
// @Produce json
// @Success 200 {object} specialtyResponse
// @Failure 404 {string} string "not found"
// @Router /api/specialties/{specialtyID} [get]
func getSpecialtyHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "specialtyID")
		if !ok {
			return
		}
		sp, err := svc.FindSpecialtyByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSpecialtyResponse(sp))
	}
}

// addSpecialtyHandler godoc
// @Summary Crear especialidad
// @Tags specialties
// @Accept json
// @Produce json
// @Success 201 {object} specialtyResponse
// @Failure 400 {object} validationErrorBody
// @Router /api/specialties [post]
func addSpecialtyHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req specialtyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateNamed(req.Name); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		sp := &model.Specialty{Name: strings.TrimSpace(req.Name)}
		if err := svc.SaveSpecialty(r.Context(), sp); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/specialties/%d", sp.ID))
		writeJSON(w, http.StatusCreated, toSpecialtyResponse(sp))
	}
}

// updateSpecialtyHandler godoc
// @Summary Actualizar especialidad
// @Tags specialties
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/specialties/{specialtyID} [put]
func updateSpecialtyHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "specialtyID")
		if !ok {
			return
		}

		var req specialtyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateNamed(req.Name); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		sp, err := svc.FindSpecialtyByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		sp.Name = strings.TrimSpace(req.Name)

		if err := svc.SaveSpecialty(r.Context(), sp); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteSpecialtyHandler godoc
// @Summary Borrar especialidad
// @Tags specialties
// @Success 204
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "especialidad referenciada por algún vet"
// @Router /api/specialties/{specialtyID} [delete]
func deleteSpecialtyHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "specialtyID")
		if !ok {
			return
		}
		if err := svc.DeleteSpecialty(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
