package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) exportReport(c *gin.Context) {
	filename := fmt.Sprintf("biztrack_report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.export.WriteWorkbook(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("failed to generate report", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to generate report", "INTERNAL")
		return
	}
}
