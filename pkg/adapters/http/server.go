package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/var1d/folio"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/content"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/session"
	"github.com/var1d/folio/pkg/theme"
)

// Server exposes the theme store, the session registry and the content
// collaborators over HTTP, SSE and WebSocket.
type Server struct {
	Theme    *theme.Store
	Palettes theme.Palettes
	Sessions *session.Manager
	Content  *content.Client
	Metrics  http.Handler
	Streams  *StreamManager

	logger *slog.Logger

	mu       sync.Mutex
	tracked  map[string]func()
	themeSub func()
}

// Option configures the Server.
type Option func(*Server)

// WithContent enables the /content routes.
func WithContent(c *content.Client) Option {
	return func(s *Server) {
		s.Content = c
	}
}

// WithMetrics mounts a metrics handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithPalettes overrides the palette table.
func WithPalettes(p theme.Palettes) Option {
	return func(s *Server) {
		s.Palettes = p
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer wires a Server to the core containers.
func NewServer(store *theme.Store, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Theme:    store,
		Palettes: theme.DefaultPalettes(),
		Sessions: sessions,
		logger:   logging.NewNop(),
		tracked:  make(map[string]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(10, s.logger)
	s.themeSub = store.Subscribe(func(mode domain.ThemeMode) {
		if b, err := json.Marshal(themeBody{Mode: mode}); err == nil {
			s.Streams.Broadcast(ThemeTopic, string(b))
		}
	})
	return s
}

// NewHandler creates the HTTP handler for the core containers.
func NewHandler(store *theme.Store, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(store, sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.routes())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/theme", func(r chi.Router) {
		r.Get("/", s.GetTheme)
		r.Put("/", s.SetTheme)
		r.Post("/toggle", s.ToggleTheme)
		r.Get("/palette", s.GetPalette)
		r.Get("/css", s.GetPaletteCSS)
		r.Get("/events", s.SubscribeThemeEvents)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.OpenSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.CloseSession)
			r.Patch("/fields", s.PatchFields)
			r.Put("/fields/{field}", s.UpdateField)
			r.Post("/submit", s.Submit)
			r.Get("/notifications", s.ListNotifications)
			r.Post("/notifications", s.AddNotification)
			r.Delete("/notifications/{nid}", s.DismissNotification)
			r.Get("/events", s.SubscribeSessionEvents)
			r.Get("/ws", s.SessionSocket)
			r.Get("/diagram", s.GetSessionDiagram)
		})
	})

	if s.Content != nil {
		r.Route("/content", func(r chi.Router) {
			r.Get("/profile", s.GetProfile)
			r.Get("/articles", s.GetArticles)
			r.Get("/repos", s.GetRepositories)
			r.Get("/projects", s.GetProjects)
		})
	}

	return r
}

// Close detaches the server from the stores it observes.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.themeSub != nil {
		s.themeSub()
		s.themeSub = nil
	}
	for id, untrack := range s.tracked {
		untrack()
		delete(s.tracked, id)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>folio API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "err", err)
	}

	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "folio-http",
		"version":     strings.TrimSpace(folio.Version),
		"api_version": apiVersion,
	})
}

// -- Helpers --

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionClosed):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrUnknownTheme):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	}
	writeJSON(w, s.logger, status, errorBody{Error: err.Error()})
}

// requestError marks client mistakes that map to 400.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(msg string, err error) error {
	return &requestError{msg: msg, err: err}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body", err)
	}
	return nil
}

func submitStatus(res contact.SubmitResult) int {
	switch res {
	case contact.SubmitAccepted:
		return http.StatusAccepted
	case contact.SubmitInvalid:
		return http.StatusUnprocessableEntity
	case contact.SubmitUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusConflict
	}
}
