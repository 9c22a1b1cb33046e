package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"petclinic-rest/internal/adapters/storage/memory"
	"petclinic-rest/internal/adapters/storage/postgres"
	"petclinic-rest/internal/api"
	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/middleware"
	"petclinic-rest/internal/platform/logger"
	"petclinic-rest/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev con headers X-Debug-*)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var store clinic.Store
	if opts.DB != nil {
		store = postgres.NewStore(opts.DB)
	} else {
		store = memory.NewStore()
	}
	svc := clinic.NewService(store)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por recurso
	r.Route("/api", func(ar chi.Router) {
		api.RegisterOwnerRoutes(ar, svc, log)
		api.RegisterPetRoutes(ar, svc, log)
		api.RegisterPetTypeRoutes(ar, svc, log)
		api.RegisterVisitRoutes(ar, svc, log)
		api.RegisterVetRoutes(ar, svc, log)
		api.RegisterSpecialtyRoutes(ar, svc, log)
		api.RegisterUserRoutes(ar, svc, log)
	})

	return r
}
