package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Subramanya2/tasktrack-core/internal/audit"
	"github.com/Subramanya2/tasktrack-core/internal/auth"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/logging"
	"github.com/Subramanya2/tasktrack-core/internal/task"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.ServerConfig
	Logger   *logging.Logger
	UserRepo auth.UserRepository
	TaskRepo task.Repository
	Hasher   *auth.Hasher
	Tokens   *auth.TokenService

	// AuditRepo is optional. When nil, no audit trail is written.
	AuditRepo audit.Repository

	Version string
}

// Server is the HTTP API server for TaskTrack.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start(). All methods are safe
// for concurrent use.
type Server struct {
	cfg       config.ServerConfig
	logger    *logging.Logger
	userRepo  auth.UserRepository
	taskRepo  task.Repository
	auditRepo audit.Repository
	hasher    *auth.Hasher
	tokens    *auth.TokenService
	version   string

	server  *http.Server
	auditCh chan *audit.Entry
	cancel  context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.TaskRepo == nil {
		return nil, fmt.Errorf("task repository is required")
	}
	if deps.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}

	s := &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		userRepo:  deps.UserRepo,
		taskRepo:  deps.TaskRepo,
		auditRepo: deps.AuditRepo,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		version:   deps.Version,
	}

	if s.auditRepo != nil {
		s.auditCh = make(chan *audit.Entry, auditChanSize)
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router, starts the audit drain goroutine, and launches
// the HTTP listener in the background. The server is stopped with
// Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.auditCh != nil {
		go s.drainAudit(srvCtx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	// Cancel background goroutines (audit drain)
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
