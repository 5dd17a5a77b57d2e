package api

import (
	"net/http"

	"github.com/comprasmart/pricewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetReport assembles the composite price report
// @Summary Get the price report for a product
// @Description Composes analytics, seasonality, competitor quotes and recommendations
// @Tags Reports
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.PriceReport
// @Failure 404 {object} map[string]string "Unknown product"
// @Router /products/{id}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reports.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
