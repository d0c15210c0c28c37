// internal/wire/wire.go
package wire

import (
	"net/http"

	"greenmart/internal/adaptor"
	"greenmart/internal/data/repository"
	"greenmart/internal/usecase"
	"greenmart/pkg/middleware"
	"greenmart/pkg/tokens"
	"greenmart/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(repo *repository.Repository, tokenSvc *tokens.Service, config *utils.Config, logger *zap.Logger) *App {
	hasher := utils.NewPasswordHasher(config.Security.BcryptCost)
	service := usecase.NewService(repo, tokenSvc, hasher, logger)
	handler := adaptor.NewHandler(service, repo, logger)
	guard := middleware.NewGuard(tokenSvc, repo.User, logger)

	return &App{
		Router:  setupRouter(handler, guard, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	guard *middleware.Guard,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(guard.Authenticate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w)
	})

	// Apply routes
	wireAuth(r, handler.Auth, logger)
	wireCatalog(r, handler.Product, handler.Category)
	wireOrder(r, handler.Order)
	wireSeller(r, handler.Seller, logger)
	wireAdmin(r, handler.Admin, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, config.App.Name+" API", nil)
	})
	r.Get("/health", handler.Health.Health)

	return r
}
