package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Caps how many recent sales the advisor sees so the prompt stays bounded.
const analysisRecentSales = 50

func (h *Handler) aiAnalysis(c *gin.Context) {
	if h.advisor == nil {
		writeError(c, http.StatusServiceUnavailable, "AI analysis is not configured", "AI_UNAVAILABLE")
		return
	}

	snapshot := h.metrics.BuildAnalysisSnapshot(analysisRecentSales)
	result, err := h.advisor.Analyze(c.Request.Context(), snapshot)
	if err != nil {
		h.logger.Error("ai analysis failed", zap.Error(err))
		writeError(c, http.StatusBadGateway, "analysis failed", "AI_ERROR")
		return
	}
	c.JSON(http.StatusOK, result)
}
