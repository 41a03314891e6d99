// Package server exposes scoring and team selection over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
)

const shutdownTimeout = 10 * time.Second

// Config holds the defaults applied when a request omits weights or constraints.
type Config struct {
	Addr        string           `mapstructure:"addr"`
	BatchSize   int              `mapstructure:"batch-size" validate:"gte=0"`
	Weights     scoring.Weights  `mapstructure:"-" validate:"-"`
	Constraints team.Constraints `mapstructure:"-" validate:"-"`
}

type Server struct {
	cfg      Config
	logger   *zap.Logger
	reviewer ai.Reviewer
	validate *validator.Validate
	metrics  *Metrics
	engine   *gin.Engine
}

// New builds the router. reviewer may be nil, in which case review requests
// are answered without a review.
func New(cfg Config, log *zap.Logger, reviewer ai.Reviewer) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = scoring.DefaultBatchSize
	}

	s := &Server{
		cfg:      cfg,
		logger:   log,
		reviewer: reviewer,
		validate: validator.New(),
		metrics:  NewMetrics(prometheus.NewRegistry()),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		RequestID(),
		Logging(s.logger),
		Recovery(s.logger),
		s.metrics.Build(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	api.POST("/rank", s.rank)
	api.POST("/explain", s.explain)
	api.POST("/pick", s.pick)
	api.POST("/summary", s.summary)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
