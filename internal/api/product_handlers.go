package api

import (
	"errors"
	"net/http"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	monitor   *service.MonitorService
	analytics *service.AnalyticsService
}

func NewProductHandler(monitor *service.MonitorService, analytics *service.AnalyticsService) *ProductHandler {
	return &ProductHandler{monitor: monitor, analytics: analytics}
}

type StartMonitoringRequest struct {
	ProductID    string  `json:"product_id" binding:"required"`
	Title        string  `json:"title"`
	Store        string  `json:"store"`
	Category     string  `json:"category"`
	CurrentPrice float64 `json:"current_price" binding:"required,gt=0"`
	LastUpdated  int64   `json:"last_updated"`
}

type RecordPriceRequest struct {
	Price     float64 `json:"price" binding:"required,gt=0"`
	Timestamp int64   `json:"timestamp"`
}

// StartMonitoring registers a product for price tracking
// @Summary Start monitoring a product
// @Description Registers a product and seeds its price series; monitoring the same product again replaces the series
// @Tags Products
// @Accept json
// @Produce json
// @Param product body StartMonitoringRequest true "Product data"
// @Success 201 {object} models.ProductSeries
// @Failure 400 {object} map[string]string "Invalid JSON or parameters"
// @Router /products [post]
func (h *ProductHandler) StartMonitoring(c *gin.Context) {
	var req StartMonitoringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	series := h.monitor.StartMonitoring(req.ProductID, models.ProductInfo{
		Title:        req.Title,
		Store:        req.Store,
		Category:     req.Category,
		CurrentPrice: req.CurrentPrice,
		LastUpdated:  req.LastUpdated,
	})

	c.JSON(http.StatusCreated, series)
}

// RecordPrice accepts a price observation
// @Summary Record a price observation
// @Description Appends an observation to the product series and evaluates registered alerts
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param observation body RecordPriceRequest true "Observation"
// @Success 200 {object} service.PriceUpdate
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 404 {object} map[string]string "Unknown product"
// @Router /products/{id}/prices [post]
func (h *ProductHandler) RecordPrice(c *gin.Context) {
	var req RecordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	update, err := h.monitor.RecordPrice(c.Param("id"), req.Price, req.Timestamp)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, update)
}

// GetHistory returns the retained price series
// @Summary Get a product's price history
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductSeries
// @Failure 404 {object} map[string]string "Unknown product"
// @Router /products/{id}/history [get]
func (h *ProductHandler) GetHistory(c *gin.Context) {
	series, err := h.monitor.Series(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// GetAnalytics returns trends and the price projection
// @Summary Get price analytics for a product
// @Tags Analytics
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.PriceAnalytics
// @Failure 404 {object} map[string]string "Unknown product"
// @Router /products/{id}/analytics [get]
func (h *ProductHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.analytics.Analytics(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GetSeasonality returns calendar price patterns
// @Summary Get price seasonality for a product
// @Tags Analytics
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Seasonality
// @Failure 404 {object} map[string]string "Unknown product"
// @Failure 422 {object} map[string]string "Not enough history"
// @Router /products/{id}/seasonality [get]
func (h *ProductHandler) GetSeasonality(c *gin.Context) {
	seasonality, err := h.analytics.Seasonality(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seasonality)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownProduct), errors.Is(err, models.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidConditions):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
