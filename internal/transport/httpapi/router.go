package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/handler"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	AccountHandler     *handler.AccountHandler
	ActivityHandler    *handler.ActivityHandler
	SessionHandler     *handler.SessionHandler
	WalletHandler      *handler.WalletHandler
	AddressBookHandler *handler.AddressBookHandler
	SettingsHandler    *handler.SettingsHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				// Account routes
				if cfg.AccountHandler != nil {
					r.Post("/accounts", cfg.AccountHandler.CreateAccount)
					r.Get("/accounts", cfg.AccountHandler.ListAccounts)
					r.Get("/accounts/{id}", cfg.AccountHandler.GetAccount)
					r.Delete("/accounts/{id}", cfg.AccountHandler.DeleteAccount)
					r.Post("/accounts/{id}/activate", cfg.AccountHandler.ActivateAccount)
				}

				// Activity feed routes
				if cfg.ActivityHandler != nil {
					r.Get("/activity", cfg.ActivityHandler.GetActivity)
					r.Post("/activity/refresh", cfg.ActivityHandler.RefreshActivity)
				}

				// Session guard routes
				if cfg.SessionHandler != nil {
					r.Get("/session", cfg.SessionHandler.GetSession)
					r.Post("/session/lock", cfg.SessionHandler.LockSession)
					r.Post("/session/unlock", cfg.SessionHandler.UnlockSession)
				}

				// Wallet operation routes
				if cfg.WalletHandler != nil {
					r.Get("/wallet/balance", cfg.WalletHandler.GetBalance)
					r.Post("/wallet/send", cfg.WalletHandler.Send)
					r.Post("/wallet/faucet", cfg.WalletHandler.RequestFaucet)
					r.Post("/contracts/deploy", cfg.WalletHandler.Deploy)
					r.Get("/staking", cfg.WalletHandler.GetStaking)
				}

				// Address book routes
				if cfg.AddressBookHandler != nil {
					r.Route("/addressbook", func(r chi.Router) {
						r.Post("/", cfg.AddressBookHandler.CreateEntry)
						r.Get("/", cfg.AddressBookHandler.ListEntries)
						r.Put("/{id}", cfg.AddressBookHandler.UpdateEntry)
						r.Delete("/{id}", cfg.AddressBookHandler.DeleteEntry)
					})
				}

				// Settings routes
				if cfg.SettingsHandler != nil {
					r.Get("/settings", cfg.SettingsHandler.GetSettings)
					r.Put("/settings", cfg.SettingsHandler.UpdateSettings)
				}
			})
		}
	})

	return r
}
