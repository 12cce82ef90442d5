// Package server wires the introspection daemon: gin router, middleware,
// metrics and graceful shutdown around a built conversions registry.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/kestrelsoft/docstore/internal/api/http"
	"github.com/kestrelsoft/docstore/internal/api/middleware"
	"github.com/kestrelsoft/docstore/internal/infrastructure/config"
	"github.com/kestrelsoft/docstore/internal/infrastructure/logging"
	"github.com/kestrelsoft/docstore/internal/infrastructure/monitoring"

	"github.com/kestrelsoft/docstore/conversions"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	logger  *logging.Logger
	metrics *monitoring.Metrics
	conv    *conversions.Conversions
	stop    chan struct{}
}

// New creates a server exposing the given registry.
func New(cfg *config.Config, conv *conversions.Conversions, logger *logging.Logger) *Server {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetrics()
	metrics.SyncRegistry(conv)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	handlers := apihttp.NewHandlers(conv)
	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s := &Server{
		router:  router,
		logger:  logger,
		metrics: metrics,
		conv:    conv,
		stop:    make(chan struct{}),
		httpSrv: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	go metrics.WatchRegistry(conv, 5*time.Second, s.stop)

	return s
}

// Run starts serving and blocks until the listener fails or Close is called.
func (s *Server) Run() error {
	s.logger.Info("Introspection server listening",
		zap.String("addr", s.httpSrv.Addr),
		zap.Int("reading_pairs", len(s.conv.ReadingPairs())),
		zap.Int("writing_pairs", len(s.conv.WritingPairs())))

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully.
func (s *Server) Close(ctx context.Context) error {
	close(s.stop)
	return s.httpSrv.Shutdown(ctx)
}
