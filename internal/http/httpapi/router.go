package httpapi

import (
	"crypto/rsa"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/Aditya-myst/hookflow/internal/http/handlers"
	"github.com/Aditya-myst/hookflow/internal/middleware"
)

// Options carries everything the router needs beyond the handler container.
type Options struct {
	Logger          zerolog.Logger
	ClerkPublicKey  *rsa.PublicKey
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires the HTTP surface. The webhook route is signature-gated
// inside its handler rather than bearer-gated: Clerk calls it directly.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/", app.Root)
	r.Post("/api/webhooks/clerk", app.ClerkWebhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(opts.ClerkPublicKey))
		r.Get("/api/hooks/generate", app.HooksGenerate)
		r.Get("/api/captions/generate", app.CaptionsGenerate)
		r.Get("/api/user/dashboard", app.Dashboard)
		r.Post("/api/verify-payment", app.VerifyPayment)
	})

	return r
}
