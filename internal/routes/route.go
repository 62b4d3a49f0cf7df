package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/samvrant/cadasta-platform/internal/auth"
	"github.com/samvrant/cadasta-platform/internal/config"
	"github.com/samvrant/cadasta-platform/internal/handlers"
	"github.com/samvrant/cadasta-platform/internal/logger"
	mdlwr "github.com/samvrant/cadasta-platform/internal/middleware"
	"github.com/samvrant/cadasta-platform/internal/permissions"
	"github.com/samvrant/cadasta-platform/internal/services"
)

func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, "cadasta")
	if err != nil {
		logr.Fatal("failed to init jwt manager", zap.Error(err))
	}

	authSvc := services.NewAuthService(db, jwtMgr, cfg, logr)
	projectSvc := services.NewProjectService(db)
	unitSvc := services.NewSpatialUnitService(db)
	relSvc := services.NewRelationshipService(db)

	authMW := mdlwr.NewAuthMiddleware(jwtMgr.PublicKey(), authSvc, logr.Logger)
	permMW := mdlwr.NewPermissionMiddleware(permissions.NewRoleChecker(), logr.Logger)

	authHandler := handlers.NewAuthHandler(authSvc, logr, cfg)
	projectHandler := handlers.NewProjectHandler(projectSvc, logr.Logger)
	unitHandler := handlers.NewSpatialUnitHandler(unitSvc, logr.Logger)
	relHandler := handlers.NewRelationshipHandler(relSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/login", authHandler.LoginLocal)
			r.Post("/ldap", authHandler.LoginLDAP)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authMW.JWTAuth)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(authMW.JWTAuth)

			r.Get("/", projectHandler.ListProjects)
			r.Post("/", projectHandler.CreateProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", projectHandler.GetProject)
				r.Delete("/", projectHandler.DeleteProject)

				r.Route("/spatial-units", func(r chi.Router) {
					r.With(permMW.Require(permissions.SpatialList)).Get("/", unitHandler.ListSpatialUnits)
					r.With(permMW.Require(permissions.SpatialAdd)).Post("/", unitHandler.CreateSpatialUnit)
					r.With(permMW.Require(permissions.SpatialView)).Get("/{id}", unitHandler.GetSpatialUnit)
					r.With(permMW.Require(permissions.SpatialUpdate)).Put("/{id}", unitHandler.UpdateSpatialUnit)
					r.With(permMW.Require(permissions.SpatialDelete)).Delete("/{id}", unitHandler.DeleteSpatialUnit)
				})

				r.Route("/relationships", func(r chi.Router) {
					r.With(permMW.Require(permissions.SpatialRelList)).Get("/", relHandler.ListRelationships)
					r.With(permMW.Require(permissions.SpatialRelAdd)).Post("/", relHandler.CreateRelationship)
					r.With(permMW.Require(permissions.SpatialRelView)).Get("/{id}", relHandler.GetRelationship)
					r.With(permMW.Require(permissions.SpatialRelDelete)).Delete("/{id}", relHandler.DeleteRelationship)
				})
			})
		})
	})

	return r
}
