package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
	"github.com/quietbooks/ledgersync/internal/tabular"
)

// statsResponse aggregates the current snapshot for the dashboard.
type statsResponse struct {
	RecordCount int               `json:"record_count"`
	TotalAmount string            `json:"total_amount"`
	ByCategory  map[string]int    `json:"by_category"`
	ByPlatform  map[string]int    `json:"by_platform"`
	ByMonth     map[string]string `json:"by_month"`
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// getLedger returns the snapshot records, optionally filtered by category
// and/or platform.
func (s *Server) getLedger(c *gin.Context) {
	records, err := tabular.ReadSnapshot(s.snapshot)
	if err != nil {
		s.logger.Error("Failed to read snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read snapshot"})
		return
	}

	category := c.Query("category")
	platform := c.Query("platform")
	if category != "" || platform != "" {
		filtered := records[:0]
		for _, rec := range records {
			if category != "" && rec.Category != category {
				continue
			}
			if platform != "" && rec.Platform != platform {
				continue
			}
			filtered = append(filtered, rec)
		}
		records = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) getStats(c *gin.Context) {
	records, err := tabular.ReadSnapshot(s.snapshot)
	if err != nil {
		s.logger.Error("Failed to read snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read snapshot"})
		return
	}

	resp := statsResponse{
		RecordCount: len(records),
		ByCategory:  make(map[string]int),
		ByPlatform:  make(map[string]int),
		ByMonth:     make(map[string]string),
	}
	total := decimal.Zero
	byMonth := make(map[string]decimal.Decimal)
	for _, rec := range records {
		total = total.Add(rec.Amount.Decimal())
		resp.ByCategory[rec.Category]++
		resp.ByPlatform[rec.Platform]++
		if t, err := ledger.ParseDate(rec.PurchaseDate); err == nil {
			month := t.Format("2006-01")
			byMonth[month] = byMonth[month].Add(rec.Amount.Decimal())
		}
	}
	resp.TotalAmount = total.StringFixed(2)
	for month, amount := range byMonth {
		resp.ByMonth[month] = amount.StringFixed(2)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getRuns(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}
	stats, err := s.store.GetStats()
	if err != nil {
		s.logger.Error("Failed to fetch run stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch run stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
		"stats": stats,
	})
}

// postReconcile triggers a pipeline run. Requests are serialized; the
// pipeline itself stays single-threaded.
func (s *Server) postReconcile(c *gin.Context) {
	if s.pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Reconciliation is disabled"})
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := time.Now()
	res, err := s.pipeline.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("Reconcile run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":      res,
		"duration_ms": time.Since(started).Milliseconds(),
	})
}
