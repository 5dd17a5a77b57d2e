package api

import (
	"net/http"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alerts service.AlertService
}

func NewAlertHandler(alerts service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type CreateAlertRequest struct {
	UserID     string                 `json:"user_id" binding:"required"`
	ProductID  string                 `json:"product_id" binding:"required"`
	Conditions models.AlertConditions `json:"conditions"`
}

// CreateAlert registers a price alert
// @Summary Create a price alert
// @Description Registers an alert on a monitored product; at least one condition field must be set
// @Tags Alerts
// @Accept json
// @Produce json
// @Param alert body CreateAlertRequest true "Alert data"
// @Success 201 {object} models.PriceAlert
// @Failure 400 {object} map[string]string "Invalid JSON or conditions"
// @Failure 404 {object} map[string]string "Unknown product"
// @Router /alerts [post]
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	alert, err := h.alerts.CreateAlert(req.UserID, req.ProductID, req.Conditions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// GetUserAlerts lists a user's alerts
// @Summary List alerts for a user
// @Tags Alerts
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} models.PriceAlert
// @Failure 400 {object} map[string]string "Missing user_id"
// @Router /alerts [get]
func (h *AlertHandler) GetUserAlerts(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	alerts, err := h.alerts.UserAlerts(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if alerts == nil {
		alerts = []*models.PriceAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

// GetProductAlerts lists active alerts for a product
// @Summary List active alerts for a product
// @Tags Alerts
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} models.PriceAlert
// @Router /products/{id}/alerts [get]
func (h *AlertHandler) GetProductAlerts(c *gin.Context) {
	alerts, err := h.alerts.ActiveAlerts(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if alerts == nil {
		alerts = []*models.PriceAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

// CancelAlert cancels an alert
// @Summary Cancel an alert
// @Description Transitions the alert to cancelled; alerts are never deleted
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} map[string]string "Alert cancelled"
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id} [delete]
func (h *AlertHandler) CancelAlert(c *gin.Context) {
	if err := h.alerts.CancelAlert(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Alert cancelled"})
}
