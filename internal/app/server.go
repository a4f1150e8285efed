// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tour-admin/internal/config"
	"tour-admin/internal/db"
	authHandler "tour-admin/internal/handlers/auth"
	dashboardHandler "tour-admin/internal/handlers/dashboard"
	wsHandler "tour-admin/internal/handlers/websocket"
	"tour-admin/internal/middleware"
	"tour-admin/internal/pkg/jwt"
	"tour-admin/internal/pkg/metrics"
	"tour-admin/internal/pkg/session"
	"tour-admin/internal/repository/postgres"
	authUsecase "tour-admin/internal/service/auth"
	"tour-admin/internal/service/dashboard"
	"tour-admin/internal/web"
	"tour-admin/internal/websocket"
	wsHandlers "tour-admin/internal/websocket/handler"
	"tour-admin/pkg/client"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg     config.AppConfig
	engine  *gin.Engine
	http    *http.Server
	logger  *zap.Logger
	metrics *metrics.Registry

	hub     *websocket.Hub
	stopHub context.CancelFunc
	pool    *pgxpool.Pool
	redis   *redis.Client
}

// NewServer wires every component. PostgreSQL and Redis are only dialled when
// configured.
func NewServer(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	ctx := context.Background()
	s := &Server{cfg: cfg, logger: logger, metrics: metrics.NewRegistry()}

	// ----- Session tokens -----
	if cfg.Session.Secret == "" {
		logger.Warn("SESSION_SECRET not set, using an ephemeral secret; sessions end on restart")
	}
	jwtManager, err := jwt.LoadAndBuild(cfg.JWT())
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT manager: %w", err)
	}
	issuer := session.NewIssuer(jwtManager.Generator, cfg.Cookie())
	reader := session.NewReader(jwtManager.Verifier, logger)

	// ----- Credential verifiers -----
	verifiers := authUsecase.ChainVerifier{
		authUsecase.NewConfiguredVerifier(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordHash),
	}
	if cfg.Database.URL != "" {
		pool, err := db.ConnectPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		verifiers = append(verifiers, authUsecase.NewDirectoryVerifier(postgres.NewAuthRepository(pool), logger))
		logger.Info("admin directory enabled")
	}

	// ----- Login throttle -----
	var throttle session.LoginThrottle
	switch {
	case cfg.ThrottleEnabled():
		rc, err := db.NewRedisClient(ctx, db.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Pass,
			PoolSize: 10,
		})
		if err != nil {
			s.closeStores()
			return nil, err
		}
		s.redis = rc
		throttle = session.NewRateLimiter(rc, cfg.Login.MaxAttempts, cfg.Login.Window)
		logger.Info("login throttle enabled",
			zap.Int64("max_attempts", cfg.Login.MaxAttempts),
			zap.Duration("window", cfg.Login.Window),
		)
	case cfg.Login.MaxAttempts > 0:
		logger.Warn("LOGIN_MAX_ATTEMPTS set without REDIS_ADDR, login throttle disabled")
	}

	// ----- WebSocket Hub -----
	s.hub = websocket.NewHub(reader, s.metrics.WSClients, logger)
	if err := s.hub.RegisterHandler(wsHandlers.NewStatsHandler()); err != nil {
		s.closeStores()
		return nil, err
	}
	hubCtx, stopHub := context.WithCancel(ctx)
	s.stopHub = stopHub
	go s.hub.Run(hubCtx)

	// ----- Booking API -----
	apiClient := client.New(cfg.API.URL,
		client.WithTimeout(cfg.API.Timeout),
		client.OnUnauthorized(session.RequestTeardown),
		client.WithResponseInterceptor(func(_ context.Context, resp client.Response) {
			s.metrics.ObserveBackend(resp.Method, resp.StatusCode, resp.Elapsed)
		}),
	)
	if cfg.API.Token == "" {
		logger.Info("API_TOKEN not set, forwarding admin session tokens to the booking API")
	}

	// ----- Services -----
	authService := authUsecase.NewAuthService(verifiers, issuer, throttle, s.metrics, logger)
	dashboardService := dashboard.NewService(apiClient, cfg.API.Token, s.hub, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService, issuer, reader, logger),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService, cfg.Cookie(), logger),
		WSHandler:        wsHandler.NewWebSocketHandler(s.hub, dashboardService, cfg.Stats.PushInterval, logger),
		Metrics:          s.metrics.Handler(),
	}

	// ----- Middlewares -----
	guard := middleware.NewGuard(middleware.DefaultRoutes, reader, s.metrics, logger)

	s.engine = gin.New()
	s.engine.SetHTMLTemplate(web.Templates())
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.SessionTeardown(),
		guard.Middleware(),
	)
	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server running", zap.String("addr", s.cfg.Server.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP connections, closes live feed clients and releases
// the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.stopHub()
	s.closeStores()
	return err
}

func (s *Server) closeStores() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
