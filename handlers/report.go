package handlers

import (
	"net/http"

	"rentwatch/services/report"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports report.ReportService
}

func NewReportHandler(reports report.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// GenerateMonthlyReport handles POST /api/reports/monthly.
func (h *ReportHandler) GenerateMonthlyReport(c *gin.Context) {
	var req report.ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	rep, err := h.Reports.Generate(c.Request.Context(), actorID(c), req)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
