// Package server exposes the assistant over HTTP and a socket channel.
//
// Routes:
//
//	GET  /healthz                       liveness probe
//	GET  /metrics                       Prometheus metrics
//	POST /api/ai/prompt                 {userId, content} -> {message}
//	GET  /api/users/:userId/messages    recent conversation, ?limit=N
//	GET  /ws                            socket channel (ai:prompt / ai:response / ai:error)
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/supportai"
	"github.com/poiesic/supportai/core"
)

const (
	// DefaultPromptTimeout bounds a single prompt end to end.
	DefaultPromptTimeout = 60 * time.Second

	// DefaultHistoryLimit applies when no ?limit is given.
	DefaultHistoryLimit = 50

	// maxHistoryLimit caps ?limit.
	maxHistoryLimit = 500

	// unavailableMessage is the only failure text users see besides validation errors.
	unavailableMessage = "AI service unavailable"
)

var (
	// ErrAssistantRequired indicates a nil assistant was passed to New.
	ErrAssistantRequired = errors.New("assistant is required")

	// ErrInvalidWorkers indicates a worker count below 1.
	ErrInvalidWorkers = errors.New("workers must be at least 1")
)

// Assistant is the pipeline the server exposes.
type Assistant interface {
	Ask(ctx context.Context, userID, content string) (*core.ChatMessage, error)
	History(ctx context.Context, userID string, limit int) ([]*core.ChatMessage, error)
}

// Server serves the assistant over HTTP and sockets.
type Server struct {
	echo          *echo.Echo
	assistant     Assistant
	pool          *ants.Pool
	workers       int
	promptTimeout time.Duration
	metrics       *Metrics
	upgrader      websocket.Upgrader
	logger        *slog.Logger

	mu      sync.Mutex
	sockets map[*socketConn]struct{}
}

// Option configures a Server.
type Option func(*Server) error

// WithWorkers sets how many prompts are answered concurrently across all sockets.
// Default is runtime.NumCPU() * 4.
func WithWorkers(n int) Option {
	return func(s *Server) error {
		if n < 1 {
			return ErrInvalidWorkers
		}
		s.workers = n
		return nil
	}
}

// WithPromptTimeout bounds each prompt. Default is DefaultPromptTimeout.
func WithPromptTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d > 0 {
			s.promptTimeout = d
		}
		return nil
	}
}

// WithMetrics replaces the server's collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) error {
		if m != nil {
			s.metrics = m
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "server")
		return nil
	}
}

// New creates a server for assistant. Call Close to release its worker pool.
func New(assistant Assistant, opts ...Option) (*Server, error) {
	if assistant == nil {
		return nil, ErrAssistantRequired
	}

	s := &Server{
		assistant:     assistant,
		workers:       runtime.NumCPU() * 4,
		promptTimeout: DefaultPromptTimeout,
		logger:        slog.Default().With("component", "server"),
		sockets:       make(map[*socketConn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The dashboard is served from a different origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	s.echo = s.routes()
	return s, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.HTTPErrorHandler = s.handleError

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api")
	api.POST("/ai/prompt", s.handlePrompt)
	api.GET("/users/:userId/messages", s.handleHistory)

	e.GET("/ws", s.handleSocket)
	return e
}

// Handler returns the HTTP handler, for tests or embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.echo.Shutdown(shutdownCtx)
	s.closeSockets()
	if startErr := <-errCh; startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
		return startErr
	}
	return err
}

// Close disconnects open sockets and releases the worker pool.
func (s *Server) Close() error {
	s.closeSockets()
	s.pool.Release()
	return nil
}

func (s *Server) handlePrompt(c echo.Context) error {
	var req PromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorPayload{Error: "malformed prompt"})
	}

	answer, err := s.answer(c.Request().Context(), "http", req)
	if err != nil {
		status, msg := publicError(err)
		return c.JSON(status, ErrorPayload{Error: msg})
	}
	return c.JSON(http.StatusOK, ResponsePayload{Message: answer})
}

func (s *Server) handleHistory(c echo.Context) error {
	limit := DefaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorPayload{Error: "limit must be a positive integer"})
		}
		limit = min(n, maxHistoryLimit)
	}

	messages, err := s.assistant.History(c.Request().Context(), c.Param("userId"), limit)
	if err != nil {
		if errors.Is(err, supportai.ErrInvalidPrompt) {
			return c.JSON(http.StatusBadRequest, ErrorPayload{Error: "userId is required"})
		}
		s.logger.Error("failed to load history", "user", c.Param("userId"), "err", err)
		return c.JSON(http.StatusServiceUnavailable, ErrorPayload{Error: "history unavailable"})
	}

	views := make([]MessageView, len(messages))
	for i, msg := range messages {
		views[i] = newMessageView(msg)
	}
	return c.JSON(http.StatusOK, HistoryResponse{Messages: views})
}

func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
	}

	req := c.Request()
	s.logger.Warn("request failed", "status", code, "method", req.Method, "path", req.URL.Path, "err", err)
	if !c.Response().Committed {
		_ = c.JSON(code, ErrorPayload{Error: msg})
	}
}

// answer runs one prompt through the assistant with the prompt timeout and
// records its outcome.
func (s *Server) answer(ctx context.Context, transport string, req PromptRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.promptTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.assistant.Ask(ctx, req.UserID, req.Content)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	s.metrics.observePrompt(transport, outcome, elapsed)

	switch outcome {
	case outcomeOK:
		s.logger.Debug("prompt answered", "transport", transport, "user", req.UserID, "elapsed", elapsed)
		return reply.Contents, nil
	case outcomeInvalid:
		s.logger.Debug("prompt rejected", "transport", transport, "err", err)
	default:
		s.logger.Error("prompt failed", "transport", transport, "user", req.UserID, "elapsed", elapsed, "err", err)
	}
	return "", err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, supportai.ErrInvalidPrompt):
		return outcomeInvalid
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeUnavailable
	}
}

// publicError maps an Ask failure to what the caller is allowed to see.
func publicError(err error) (int, string) {
	if errors.Is(err, supportai.ErrInvalidPrompt) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusServiceUnavailable, unavailableMessage
}
