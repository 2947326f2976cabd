package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/var1d/folio"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/session"
	"github.com/var1d/folio/pkg/theme"
)

// PaletteURI is the resource holding the palette of the current mode.
const PaletteURI = "folio://theme/palette"

// ThemeResponse is returned by the theme tools.
type ThemeResponse struct {
	Mode domain.ThemeMode `json:"mode" jsonschema_description:"The current display mode (dark or neon)"`
}

// SessionResponse is returned by the session tools.
type SessionResponse struct {
	Result  string                 `json:"result,omitempty" jsonschema_description:"Outcome of a submission: accepted, ignored or invalid"`
	Session domain.SessionSnapshot `json:"session" jsonschema_description:"Status, fields and notifications of the session"`
}

// NotificationsResponse is returned by the notification tools.
type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications" jsonschema_description:"Pending notifications in display order"`
	Removed       *bool                 `json:"removed,omitempty" jsonschema_description:"Whether the dismissed id was present"`
}

type themeArgs struct {
	Mode string `json:"mode"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type fieldArgs struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

type submitArgs struct {
	SessionID string `json:"session_id"`
	Wait      bool   `json:"wait"`
}

type dismissArgs struct {
	SessionID string `json:"session_id"`
	ID        uint64 `json:"id"`
}

// Server exposes the theme store and the contact sessions as MCP tools.
type Server struct {
	theme     *theme.Store
	sessions  *session.Manager
	palettes  theme.Palettes
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithPalettes overrides the palettes exposed as a resource.
func WithPalettes(p theme.Palettes) Option {
	return func(s *Server) {
		s.palettes = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(store *theme.Store, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		theme:     store,
		sessions:  sessions,
		palettes:  theme.DefaultPalettes(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("folio-mcp", strings.TrimSpace(folio.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_theme",
		mcp.WithDescription("Get the current display mode."),
		mcp.WithOutputSchema[ThemeResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetTheme))

	s.mcpServer.AddTool(mcp.NewTool("set_theme",
		mcp.WithDescription("Set the display mode."),
		mcp.WithString("mode", mcp.Required(), mcp.Enum("dark", "neon"), mcp.Description("Display mode")),
		mcp.WithOutputSchema[ThemeResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetTheme))

	s.mcpServer.AddTool(mcp.NewTool("toggle_theme",
		mcp.WithDescription("Flip the display mode between dark and neon."),
		mcp.WithOutputSchema[ThemeResponse](),
	), mcp.NewStructuredToolHandler(s.handleToggleTheme))

	s.mcpServer.AddTool(mcp.NewTool("open_session",
		mcp.WithDescription("Open (or resume) a contact session. Omit session_id to generate one."),
		mcp.WithString("session_id", mcp.Description("Session ID (optional)")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleOpenSession))

	s.mcpServer.AddTool(mcp.NewTool("update_field",
		mcp.WithDescription("Overwrite one contact form field."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("field", mcp.Required(), mcp.Enum("name", "email", "message"), mcp.Description("Field name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleUpdateField))

	s.mcpServer.AddTool(mcp.NewTool("submit_contact",
		mcp.WithDescription("Submit the contact form. Delivery is asynchronous unless wait is set."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithBoolean("wait", mcp.Description("Block until delivery resolves")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("list_notifications",
		mcp.WithDescription("List pending notifications of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[NotificationsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListNotifications))

	s.mcpServer.AddTool(mcp.NewTool("dismiss_notification",
		mcp.WithDescription("Remove a notification before it expires. Unknown ids are ignored."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Notification ID")),
		mcp.WithOutputSchema[NotificationsResponse](),
	), mcp.NewStructuredToolHandler(s.handleDismiss))
}

func (s *Server) handleGetTheme(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ThemeResponse, error) {
	return ThemeResponse{Mode: s.theme.Get()}, nil
}

func (s *Server) handleSetTheme(ctx context.Context, request mcp.CallToolRequest, args themeArgs) (ThemeResponse, error) {
	mode, err := domain.ParseThemeMode(args.Mode)
	if err != nil {
		return ThemeResponse{}, err
	}
	s.theme.Set(mode)
	return ThemeResponse{Mode: mode}, nil
}

func (s *Server) handleToggleTheme(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ThemeResponse, error) {
	return ThemeResponse{Mode: s.theme.Toggle()}, nil
}

func (s *Server) handleOpenSession(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SessionResponse, error) {
	sess, err := s.sessions.Open(args.SessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("open failed: %w", err)
	}
	return SessionResponse{Session: sess.Snapshot()}, nil
}

func (s *Server) handleUpdateField(ctx context.Context, request mcp.CallToolRequest, args fieldArgs) (SessionResponse, error) {
	sess, err := s.sessions.Get(args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	field, err := domain.ParseField(args.Field)
	if err != nil {
		return SessionResponse{}, err
	}
	if err := sess.UpdateField(field, args.Value); err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{Session: sess.Snapshot()}, nil
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args submitArgs) (SessionResponse, error) {
	sess, err := s.sessions.Get(args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	res := sess.Submit(ctx)
	if args.Wait && res == contact.SubmitAccepted {
		sess.Wait()
	}
	s.logger.Debug("MCP submit", "session_id", sess.ID(), "result", res.String())
	return SessionResponse{Result: res.String(), Session: sess.Snapshot()}, nil
}

func (s *Server) handleListNotifications(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (NotificationsResponse, error) {
	sess, err := s.sessions.Get(args.SessionID)
	if err != nil {
		return NotificationsResponse{}, err
	}
	return NotificationsResponse{Notifications: sess.Queue().List()}, nil
}

func (s *Server) handleDismiss(ctx context.Context, request mcp.CallToolRequest, args dismissArgs) (NotificationsResponse, error) {
	sess, err := s.sessions.Get(args.SessionID)
	if err != nil {
		return NotificationsResponse{}, err
	}
	removed := sess.Queue().Remove(args.ID)
	return NotificationsResponse{Notifications: sess.Queue().List(), Removed: &removed}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PaletteURI, "Current Theme Palette",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.palettes[s.theme.Get()])
		if err != nil {
			return nil, fmt.Errorf("failed to encode palette: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PaletteURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
