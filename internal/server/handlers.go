package server

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eodhub/eoddata-go/accounting"
	"github.com/eodhub/eoddata-go/internal/logger"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":             "ok",
		"time":               time.Now().Format(time.RFC3339),
		"accounting_running": s.tracker.IsRunning(),
	})
}

func (s *Server) ping(c *gin.Context) {
	c.String(200, "pong")
}

// ==================== Accounting ====================

func (s *Server) accountingSummary(c *gin.Context) {
	c.String(200, s.tracker.Summary())
}

func (s *Server) accountingUsage(c *gin.Context) {
	c.JSON(200, gin.H{"data": s.tracker.SnapshotAll()})
}

func (s *Server) accountingExport(c *gin.Context) {
	data, err := s.tracker.Export()
	if err != nil {
		s.logger.Error("Failed to export accounting state", zap.Error(err))
		c.JSON(500, gin.H{"error": "Failed to export accounting state"})
		return
	}
	c.Data(200, "application/json", data)
}

func (s *Server) accountingImport(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := s.tracker.Import(data); err != nil {
		var pe *accounting.PersistenceError
		if errors.As(err, &pe) {
			c.JSON(400, gin.H{"error": pe.Error()})
			return
		}
		s.logger.Error("Failed to import accounting state", zap.Error(err))
		c.JSON(500, gin.H{"error": "Failed to import accounting state"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

func (s *Server) accountingReset(c *gin.Context) {
	s.tracker.Reset()
	s.logger.Info("Accounting counters reset via API")
	c.JSON(200, gin.H{"success": true})
}

func (s *Server) accountingStart(c *gin.Context) {
	s.tracker.Start()
	c.JSON(200, gin.H{"success": true, "running": true})
}

func (s *Server) accountingStop(c *gin.Context) {
	s.tracker.Stop()
	c.JSON(200, gin.H{"success": true, "running": false})
}

func (s *Server) accountingSetQuotas(c *gin.Context) {
	var req struct {
		APIKey   string `json:"api_key" binding:"required"`
		Total    int64  `json:"total"`
		Calls60s int64  `json:"calls_60s"`
		Calls24h int64  `json:"calls_24h"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	quota := accounting.Quota{
		Total:    req.Total,
		Calls60s: req.Calls60s,
		Calls24h: req.Calls24h,
	}
	if err := s.tracker.EnableQuotas(req.APIKey, quota); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// ==================== Logs ====================

func (s *Server) recentLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	c.JSON(200, gin.H{"data": logger.GlobalBuffer.GetRecent(limit)})
}
