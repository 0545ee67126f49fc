// Package httpapi exposes the assessment and alert operations over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/domain"
	"github.com/epidemicwatch/risk-service/internal/observability"
	"github.com/epidemicwatch/risk-service/internal/predict"
)

// Assessor runs the prediction flow for a location query.
type Assessor interface {
	Assess(ctx context.Context, q predict.Query) predict.Prediction
}

// Refresher triggers a manual alert refresh, returning the number of alerts
// accepted into the store.
type Refresher interface {
	Refresh(ctx context.Context) int
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Credentials are the demo admin login. Tokens issued against them live in
// memory and expire with the process.
type Credentials struct {
	Username string
	Password string
}

// Server exposes the REST API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	assessor   Assessor
	refresher  Refresher
	store      *alert.Store
	creds      Credentials
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu     sync.Mutex
	tokens map[string]struct{}
}

// NewServer wires the routes.
func NewServer(addr string, assessor Assessor, refresher Refresher, store *alert.Store, ready ReadinessChecker, creds Credentials, logger *slog.Logger, metrics *observability.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:    engine,
		assessor:  assessor,
		refresher: refresher,
		store:     store,
		creds:     creds,
		logger:    logger,
		metrics:   metrics,
		tokens:    make(map[string]struct{}),
	}

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/readyz", handleReady(ready))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	v1.GET("/assessment", s.handleAssessment)
	v1.GET("/alerts", s.handleListAlerts)
	v1.GET("/alerts/stats", s.handleAlertStats)
	v1.POST("/alerts/refresh", s.handleRefresh)
	v1.POST("/admin/login", s.handleLogin)

	admin := v1.Group("/admin", s.requireToken)
	admin.POST("/alerts", s.handleCreateAlert)
	admin.DELETE("/alerts", s.handleClearAlerts)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// handleAssessment runs the prediction flow. Without a city parameter the
// caller's location is resolved automatically; with one, city and country
// are geocoded. The flow never fails, so this always returns 200.
func (s *Server) handleAssessment(c *gin.Context) {
	q := predict.Query{
		City:    strings.TrimSpace(c.Query("city")),
		Country: strings.TrimSpace(c.Query("country")),
	}
	c.JSON(http.StatusOK, s.assessor.Assess(c.Request.Context(), q))
}

func (s *Server) handleListAlerts(c *gin.Context) {
	var f alert.Filter
	if raw := c.Query("severity"); raw != "" {
		sev, ok := domain.ParseSeverity(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity: " + raw})
			return
		}
		f.Severity = sev
	}
	f.Region = c.Query("region")

	c.JSON(http.StatusOK, gin.H{
		"alerts":  s.store.List(f),
		"regions": s.store.Regions(),
	})
}

func (s *Server) handleAlertStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}

func (s *Server) handleRefresh(c *gin.Context) {
	added := s.refresher.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"added": added, "total": s.store.Len()})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks the demo credentials and issues an opaque bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Username != s.creds.Username || req.Password != s.creds.Password {
		s.logger.Warn("admin login rejected", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// requireToken gates admin routes on a previously issued bearer token.
func (s *Server) requireToken(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	s.mu.Lock()
	_, known := s.tokens[token]
	s.mu.Unlock()
	if !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Next()
}

type createAlertRequest struct {
	Disease  string `json:"disease" binding:"required"`
	Region   string `json:"region" binding:"required"`
	Severity string `json:"severity" binding:"required"`
	Message  string `json:"message"`
}

func (s *Server) handleCreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "disease, region, and severity are required"})
		return
	}
	sev, ok := domain.ParseSeverity(req.Severity)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity: " + req.Severity})
		return
	}

	a := alert.NewManualAlert(req.Disease, req.Region, sev, req.Message)
	if !s.store.Add(a) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate alert suppressed"})
		return
	}
	s.metrics.AlertsCreated.WithLabelValues(string(a.Origin), string(a.Severity)).Inc()
	s.metrics.AlertsStored.Set(float64(s.store.Len()))
	s.logger.Info("manual alert created", "disease", a.Disease, "region", a.Region, "severity", a.Severity)
	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleClearAlerts(c *gin.Context) {
	s.store.ClearAll()
	s.metrics.AlertsStored.Set(0)
	s.logger.Info("alert list cleared")
	c.JSON(http.StatusOK, gin.H{"total": 0})
}
