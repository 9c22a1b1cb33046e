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

func RegisterUserRoutes(r chi.Router, svc *clinic.Service, log logger.Logger) {
	r.Route("/users", func(ur chi.Router) {
		ur.Use(middleware.RequireRoles(roleAdmin))

		ur.Post("/", addUserHandler(svc, log))
	})
}

// addUserHandler godoc
// @Summary Crear o actualizar cuenta de usuario
// @Description Normaliza los roles al prefijo ROLE_ y hashea la contraseña con bcrypt.
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} userResponse
// @Failure 400 {object} validationErrorBody
// @Router /api/users [post]
func addUserHandler(svc *clinic.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if errs := validateUser(req); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		u := &model.User{
			Username: strings.TrimSpace(req.Username),
			Password: req.Password,
			Enabled:  req.Enabled,
		}
		for _, role := range req.Roles {
			u.AddRole(strings.TrimSpace(role.Name))
		}

		if err := svc.SaveUser(r.Context(), u); err != nil {
			respondError(log, w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/users/%s", u.Username))
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}
