package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/auth"
	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/handlers"
	"github.com/diewo77/go-quotations/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	manager *auth.Manager

	tokenHandler     *handlers.TokenHandler
	accountHandler   *handlers.AccountHandler
	userHandler      *handlers.UserHandler
	clientHandler    *handlers.ClientHandler
	productHandler   *handlers.ProductHandler
	quotationHandler *handlers.QuotationHandler
	companyHandler   *handlers.CompanyHandler
	termsHandler     *handlers.TermsHandler

	uploadDir string
}

// NewApp wires services and handlers and configures all routes.
func NewApp(conn *gorm.DB, cfg config.Config) *App {
	accounts := services.NewAccountService(conn)
	quotations := services.NewQuotationService(conn)

	manager := auth.NewManager(cfg.JWTSecret, accounts.ByUsername)
	loginTTL := time.Duration(cfg.LoginTTLMin) * time.Minute

	app := &App{
		mux:              http.NewServeMux(),
		manager:          manager,
		tokenHandler:     handlers.NewTokenHandler(accounts, manager, loginTTL),
		accountHandler:   handlers.NewAccountHandler(accounts),
		userHandler:      handlers.NewUserHandler(conn),
		clientHandler:    handlers.NewClientHandler(conn),
		productHandler:   handlers.NewProductHandler(conn),
		quotationHandler: handlers.NewQuotationHandler(conn, quotations, cfg.UploadDir),
		companyHandler:   handlers.NewCompanyHandler(conn, cfg.UploadDir),
		termsHandler:     handlers.NewTermsHandler(conn),
		uploadDir:        cfg.UploadDir,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := withLogging(a.manager.Middleware(a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// Public routes
	a.mux.HandleFunc("POST /accounts/", a.accountHandler.Create)
	a.mux.HandleFunc("POST /token", a.tokenHandler.Create)

	// Account routes: "me" is open to any authenticated account, the rest
	// of the account surface is admin-gated.
	a.mux.Handle("GET /accounts/me", a.requireAccount(a.accountHandler.Me))
	a.mux.Handle("GET /accounts/", a.requireAdmin(a.accountHandler.List))
	a.mux.Handle("PUT /accounts/{id}", a.requireAdmin(a.accountHandler.Update))
	a.mux.Handle("POST /accounts/{id}/delete", a.requireAdmin(a.accountHandler.Delete))

	// Advisors
	a.mux.Handle("POST /users/", a.requireAccount(a.userHandler.Create))
	a.mux.Handle("GET /users/", a.requireAccount(a.userHandler.List))
	a.mux.Handle("PUT /users/{id}", a.requireAccount(a.userHandler.Update))
	a.mux.Handle("DELETE /users/{id}", a.requireAccount(a.userHandler.Delete))

	// Clients
	a.mux.Handle("POST /clients/", a.requireAccount(a.clientHandler.Create))
	a.mux.Handle("GET /clients/", a.requireAccount(a.clientHandler.List))
	a.mux.Handle("GET /clients/{id}", a.requireAccount(a.clientHandler.Get))
	a.mux.Handle("PUT /clients/{id}", a.requireAccount(a.clientHandler.Update))
	a.mux.Handle("DELETE /clients/{id}", a.requireAccount(a.clientHandler.Delete))

	// Products
	a.mux.Handle("POST /products/", a.requireAccount(a.productHandler.Create))
	a.mux.Handle("GET /products/", a.requireAccount(a.productHandler.List))
	a.mux.Handle("GET /products/{id}", a.requireAccount(a.productHandler.Get))
	a.mux.Handle("PUT /products/{id}", a.requireAccount(a.productHandler.Update))
	a.mux.Handle("DELETE /products/{id}", a.requireAccount(a.productHandler.Delete))

	// Quotations
	a.mux.Handle("POST /quotations/", a.requireAccount(a.quotationHandler.Create))
	a.mux.Handle("GET /quotations/", a.requireAccount(a.quotationHandler.List))
	a.mux.Handle("GET /quotations/{id}", a.requireAccount(a.quotationHandler.Get))
	a.mux.Handle("PUT /quotations/{id}", a.requireAccount(a.quotationHandler.Update))
	a.mux.Handle("DELETE /quotations/{id}", a.requireAccount(a.quotationHandler.Delete))
	a.mux.Handle("GET /quotations/{id}/pdf", a.requireAccount(a.quotationHandler.PDF))

	// Company profile (shared) and per-account terms
	a.mux.Handle("GET /company-profile/", a.requireAccount(a.companyHandler.Get))
	a.mux.Handle("PUT /company-profile/", a.requireAccount(a.companyHandler.Update))
	a.mux.Handle("POST /company-profile/logo", a.requireAccount(a.companyHandler.UploadLogo))
	a.mux.Handle("GET /terms-conditions/", a.requireAccount(a.termsHandler.Get))
	a.mux.Handle("PUT /terms-conditions/", a.requireAccount(a.termsHandler.Update))

	// Uploaded logos
	a.mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.uploadDir))))
}

func (a *App) requireAccount(h http.HandlerFunc) http.Handler {
	return auth.RequireAccount(h)
}

func (a *App) requireAdmin(h http.HandlerFunc) http.Handler {
	return auth.RequireAdmin(h)
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging with a per-request id.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(rec, r)
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
