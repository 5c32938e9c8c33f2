// Package httpapi exposes the PromptDesk JSON API over HTTP: registration,
// login, saved prompts and the chat relay, plus health and metrics.
package httpapi

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/promptdesk/internal/logging"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
	"github.com/dmitrijs2005/promptdesk/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(token string) (int64, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type PromptService interface {
	Save(ctx context.Context, userID int64, content string) (int64, error)
	ListSaved(ctx context.Context, userID int64) ([]*models.Prompt, error)
	ListRecent(ctx context.Context, userID int64) ([]*models.Prompt, error)
	ToggleSaved(ctx context.Context, userID, promptID int64) (bool, error)
}

type ChatRelay interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the router wires into handlers. Redis is
// optional: when set it backs the rate limiter and joins the health check.
type Deps struct {
	Config  *config.Config
	Logger  logging.Logger
	Users   UserService
	Prompts PromptService
	Relay   ChatRelay
	DB      Pinger
	Redis   *redis.Client
}

type API struct {
	cfg      *config.Config
	logger   logging.Logger
	users    UserService
	prompts  PromptService
	relay    ChatRelay
	validate *validator.Validate
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(d Deps) (http.Handler, error) {
	api := &API{
		cfg:      d.Config,
		logger:   d.Logger.With("module", "httpapi"),
		users:    d.Users,
		prompts:  d.Prompts,
		relay:    d.Relay,
		validate: newValidator(),
	}

	rateLimit, err := newRateLimiter(d.Config.RateLimit, d.Redis)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(api.logger))
	r.Use(middleware.Recoverer)
	r.Use(prometheusMiddleware)
	r.Use(newSecure(d.Config.Development))
	r.Use(newCORS(d.Config.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeNotAllowed, "Method not allowed")
	})

	r.Method(http.MethodGet, "/health", newHealthHandler(d.DB, d.Redis))
	if d.Config.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit)

		r.Post("/register", api.handleRegister)
		r.Post("/login", api.handleLogin)
		r.Post("/chat", api.handleChat)

		r.Group(func(r chi.Router) {
			r.Use(api.requireAuth)
			r.Post("/prompts", api.handleSavePrompt)
			r.Get("/prompts/saved", api.handleListSaved)
			r.Get("/prompts/recent", api.handleListRecent)
			r.Post("/prompts/{id}/toggle-save", api.handleToggleSave)
		})

		if d.Config.DebugEndpoints {
			r.Get("/debug/users", api.handleDebugUsers)
		}
	})

	return r, nil
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
