package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RouterConfig groups the handlers the router mounts. Nil handlers are
// skipped, so partially configured deployments still serve the rest of
// the API.
type RouterConfig struct {
	Payments *PaymentHandler
	Notify   *NotifyHandler
	Products *ProductHandler
	Accounts *AccountHandler

	RequestTimeout time.Duration
}

// NewRouter builds the API router with the shared middleware stack.
func NewRouter(cfg RouterConfig) *chi.Mux {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDHeaderMiddleware)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		if cfg.Payments != nil {
			r.Route("/paypal", func(r chi.Router) {
				r.Post("/create-order", cfg.Payments.CreateOrder)
				r.Post("/capture-order", cfg.Payments.CaptureOrder)
			})
		}

		if cfg.Notify != nil {
			r.Post("/notify/login", cfg.Notify.LoginAlert)
		}

		if cfg.Products != nil {
			r.Get("/products", cfg.Products.List)
		}

		if cfg.Accounts != nil {
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.Accounts.Create)
				r.Post("/login", cfg.Accounts.Login)
				r.Get("/", cfg.Accounts.List)
				r.Delete("/{id}", cfg.Accounts.Delete)
			})
		}
	})

	return r
}

// RequestIDHeaderMiddleware echoes the request id back to the client,
// minting one when the request carries none.
func RequestIDHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}
