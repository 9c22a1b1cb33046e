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

func RegisterVetRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Use(middleware.RequireRoles(roleVetAdmin))

		vr.Get("/", listVetsHandler(svc, log))
		vr.Post("/", addVetHandler(svc, log))
		vr.Get("/{vetID}", getVetHandler(svc, log))
		vr.Put("/{vetID}", updateVetHandler(svc, log))
		vr.Delete("/{vetID}", deleteVetHandler(svc, log))
	})
}

// listVetsHandler godoc
// @Summary Listar vets con sus especialidades
// @Tags vets
// @Produce json
// @Success 200 {array} vetResponse
// @Router /api/vets [get]
func listVetsHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vets, err := svc.FindAllVets(r.Context())
		if err != nil {
			respondError(log, w, err)
			return
		}
		out := make([]vetResponse, 0, len(vets))
		for _, v := range vets {
			out = append(out, toVetResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getVetHandler godoc
// @Summary Obtener vet por id
// @Tags vets
// @Produce json
// @Success 200 {object} vetResponse
// @Failure 404 {string} string "not found"
// @Router /api/vets/{vetID} [get]
func getVetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "vetID")
		if !ok {
			return
		}
		v, err := svc.FindVetByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

// addVetHandler godoc
// @Summary Crear vet
// @Description Las especialidades se resuelven por nombre contra el catálogo; nombres desconocidos se descartan.
// @Tags vets
// @Accept json
// @Produce json
// @Success 201 {object} vetResponse
// @Failure 400 {object} validationErrorBody
// @Router /api/vets [post]
func addVetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vetFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateVetFields(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		v := &model.Vet{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}
		for _, sp := range req.Specialties {
			v.AddSpecialty(&model.Specialty{Name: strings.TrimSpace(sp.Name)})
		}

		if err := svc.SaveVet(r.Context(), v); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/vets/%d", v.ID))
		writeJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

// updateVetHandler godoc
// @Summary Actualizar vet (reemplaza el set de especialidades)
// @Tags vets
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/vets/{vetID} [put]
func updateVetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "vetID")
		if !ok {
			return
		}

		var req vetFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateVetFields(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		v, err := svc.FindVetByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		v.FirstName = strings.TrimSpace(req.FirstName)
		v.LastName = strings.TrimSpace(req.LastName)
		v.ClearSpecialties()
		for _, sp := range req.Specialties {
			v.AddSpecialty(&model.Specialty{Name: strings.TrimSpace(sp.Name)})
		}

		if err := svc.SaveVet(r.Context(), v); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteVetHandler godoc
// @Summary Borrar vet
// @Tags vets
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/vets/{vetID} [delete]
func deleteVetHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "vetID")
		if !ok {
			return
		}
		if err := svc.DeleteVet(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
