package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/erp/planner-connector/internal/application/export"
	"github.com/erp/planner-connector/internal/application/importer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler exposes the two connector endpoints: the streamed plan export
// and the plan result upload.
type PlanHandler struct {
	exporter *export.Exporter
	importer *importer.Importer
	log      *zap.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(exporter *export.Exporter, imp *importer.Importer, log *zap.Logger) *PlanHandler {
	return &PlanHandler{exporter: exporter, importer: imp, log: log.Named("http")}
}

// RegisterRoutes registers the plan routes on the given group
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plan := rg.Group("/plan")
	plan.GET("", h.Export)
	plan.POST("", h.Import)
}

// planQuery selects a full (1) or incremental (2) run; full is the default.
type planQuery struct {
	Mode int `form:"mode,default=1" binding:"oneof=1 2"`
}

// Export streams the planning model document.
func (h *PlanHandler) Export(c *gin.Context) {
	mode, err := parseMode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.exporter.Run(c.Request.Context(), c.Writer, mode); err != nil {
		// Headers are gone by now; log and cut the stream.
		h.log.Error("plan export failed", zap.Int("mode", mode), zap.Error(err))
		c.Abort()
	}
}

// Import consumes an uploaded plan result document and replies with the run
// summary so the operator can audit partial success.
func (h *PlanHandler) Import(c *gin.Context) {
	mode, err := parseMode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body io.Reader = c.Request.Body
	if file, err := c.FormFile("frePPLe plan"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
			return
		}
		defer f.Close()
		body = f
	}

	summary, err := h.importer.Run(c.Request.Context(), body, mode)
	if err != nil {
		h.log.Error("plan import failed", zap.Int("mode", mode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"purchase_orders":      summary.Purchases,
		"stock_moves":          summary.Moves,
		"manufacturing_orders": summary.Manufacturing,
		"messages":             summary.Messages,
	})
}

var errInvalidMode = errors.New("mode must be 1 (full) or 2 (incremental)")

func parseMode(c *gin.Context) (int, error) {
	var q planQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, errInvalidMode
	}
	return q.Mode, nil
}
