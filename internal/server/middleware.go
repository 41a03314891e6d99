package server

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-Id"
)

// RequestID attaches a request ID to context and response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// Logging emits a structured log per request.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
			zap.String("client_ip", c.ClientIP()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("error", errs.String()))
		}

		log.Info("request complete", fields...)
	}
}

// Recovery recovers from panics and returns a standardized error response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic",
					zap.String("request_id", RequestIDFromContext(c)),
					zap.Any("error", rec),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
				)
				respondError(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			}
		}()
		c.Next()
	}
}

// Metrics holds the HTTP and selection collectors, all registered on one
// registry so tests and embedders never touch the global one.
type Metrics struct {
	registry   *prometheus.Registry
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	scored     prometheus.Counter
	picked     *prometheus.CounterVec
	shortfall  prometheus.Counter
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	labels := []string{"method", "path", "status_code"}

	return &Metrics{
		registry: reg,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			labels,
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			labels,
		),
		scored: factory.NewCounter(prometheus.CounterOpts{
			Name: "hire_picker_candidates_scored_total",
			Help: "Candidates scored across all requests",
		}),
		picked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hire_picker_teams_picked_total",
			Help: "Teams assembled, by selection mode",
		}, []string{"mode"}),
		shortfall: factory.NewCounter(prometheus.CounterOpts{
			Name: "hire_picker_team_shortfall_total",
			Help: "Teams returned with fewer members than requested",
		}),
	}
}

func (m *Metrics) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		method := ctx.Request.Method
		path := ctx.FullPath()
		if path == "" {
			path = ctx.Request.URL.Path
		}
		statusCode := strconv.Itoa(ctx.Writer.Status())

		m.summaryVec.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		m.counterVec.WithLabelValues(method, path, statusCode).Inc()
	}
}
