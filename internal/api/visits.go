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

func RegisterVisitRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/visits", func(vr chi.Router) {
		vr.Use(middleware.RequireRoles(roleOwnerAdmin))

		vr.Get("/", listVisitsHandler(svc, log))
		vr.Post("/", addVisitHandler(svc, log))
		vr.Get("/{visitID}", getVisitHandler(svc, log))
		vr.Put("/{visitID}", updateVisitHandler(svc, log))
		vr.Delete("/{visitID}", deleteVisitHandler(svc, log))
	})
}

// listVisitsHandler godoc
// @Summary Listar todas las visitas
// @Tags visits
// @Produce json
// @Success 200 {array} visitResponse
// @Router /api/visits [get]
func listVisitsHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visits, err := svc.FindAllVisits(r.Context())
		if err != nil {
			respondError(log, w, err)
			return
		}
		out := make([]visitResponse, 0, len(visits))
		for _, v := range visits {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addVisitHandler godoc
// @Summary Registrar visita referenciando al pet por petId
// @Tags visits
// @Accept json
// @Produce json
// @Success 201 {object} visitResponse
// @Failure 400 {object} validationErrorBody
// @Failure 404 {string} string "pet inexistente"
// @Router /api/visits [post]
func addVisitHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req visitFieldsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		errs := validateVisitFields(req)
		if req.PetID <= 0 {
			errs = append(errs, fieldError{Field: "petId", Message: "is required"})
		}
		if len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		pet, err := svc.FindPetByID(r.Context(), req.PetID)
		if err != nil {
			respondError(log, w, err)
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

// getVisitHandler godoc
// @Summary Obtener visita por id
// @Tags visits
// @Produce json
// @Success 200 {object} visitResponse
// @Failure 404 {string} string "not found"
// @Router /api/visits/{visitID} [get]
func getVisitHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "visitID")
		if !ok {
			return
		}
		v, err := svc.FindVisitByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

// updateVisitHandler godoc
// @Summary Actualizar visita
// @Tags visits
// @Accept json
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/visits/{visitID} [put]
func updateVisitHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "visitID")
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

		v, err := svc.FindVisitByID(r.Context(), id)
		if err != nil {
			respondError(log, w, err)
			return
		}
		v.Description = strings.TrimSpace(req.Description)
		if strings.TrimSpace(req.Date) != "" {
			d, _ := parseDate(req.Date)
			v.Date = d
		}

		if err := svc.SaveVisit(r.Context(), v); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteVisitHandler godoc
// @Summary Borrar visita
// @Tags visits
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /api/visits/{visitID} [delete]
func deleteVisitHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r, "visitID")
		if !ok {
			return
		}
		if err := svc.DeleteVisit(r.Context(), id); err != nil {
			respondError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
