package server

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eodhub/eoddata-go/accounting"
	"github.com/eodhub/eoddata-go/internal/config"
)

// Server exposes the accounting tracker over a local HTTP API: usage
// summaries, export/import, reset and quota management.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	router  *gin.Engine
	tracker *accounting.Tracker
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger, tracker *accounting.Tracker) *Server {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		router:  gin.New(),
		tracker: tracker,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router returns the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggerMiddleware())

	if s.cfg.Security.EnableCORS {
		s.router.Use(s.corsMiddleware())
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ping", s.ping)

	api := s.router.Group("/api")
	api.Use(s.adminAuthMiddleware())
	{
		api.GET("/logs", s.recentLogs)

		acct := api.Group("/accounting")
		{
			acct.GET("/summary", s.accountingSummary)
			acct.GET("/usage", s.accountingUsage)
			acct.GET("/export", s.accountingExport)
			acct.POST("/import", s.accountingImport)
			acct.POST("/reset", s.accountingReset)
			acct.POST("/start", s.accountingStart)
			acct.POST("/stop", s.accountingStop)
			acct.PUT("/quotas", s.accountingSetQuotas)
		}
	}
}

// generateToken derives the admin token from the configured password.
func generateToken(password string) string {
	sum := sha256.Sum256([]byte("eoddata-admin:" + password))
	return hex.EncodeToString(sum[:])
}
