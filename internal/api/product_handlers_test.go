package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"
	"github.com/comprasmart/pricewatch/internal/service"
	"github.com/comprasmart/pricewatch/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	store := repository.NewSeriesStore(0)
	alertRepo := repository.NewMemoryAlertRepository()
	alerts := service.NewAlertService(alertRepo, store, log)

	hub := ws.NewHub(log)
	go hub.Run()

	monitor := service.NewMonitorService(store, alerts, hub, log)
	analytics := service.NewAnalyticsService(store)
	cache := repository.NewReportCache(nil, time.Minute, log)
	reports := service.NewReportService(store, analytics, service.SimulatedCompetitorSource{}, cache, log)

	r := gin.New()
	SetupRoutes(r, monitor, alerts, analytics, reports, ws.NewWebSocketHandler(hub))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProductLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"product_id":    "P1",
		"title":         "T",
		"store":         "X",
		"category":      "c",
		"current_price": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/products/P1/prices", gin.H{"price": 900})
	require.Equal(t, http.StatusOK, w.Code)

	var update service.PriceUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	assert.Equal(t, 900.0, update.Change.NewPrice)
	assert.InDelta(t, -10.0, update.Change.PriceChange, 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/v1/products/P1/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var analytics models.PriceAnalytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analytics))
	assert.Equal(t, 900.0, analytics.Current)
	assert.Equal(t, 900.0, analytics.Stats.LowestPrice)
}

func TestRecordPrice_UnknownProductReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products/ghost/prices", gin.H{"price": 900})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordPrice_RejectsNonPositive(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products/P1/prices", gin.H{"price": -5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAlert_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"product_id":    "P1",
		"current_price": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// No trigger field set.
	w = doJSON(t, r, http.MethodPost, "/api/v1/alerts", gin.H{
		"user_id":    "U1",
		"product_id": "P1",
		"conditions": gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/alerts", gin.H{
		"user_id":    "U1",
		"product_id": "P1",
		"conditions": gin.H{"target_price": 950},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var alert models.PriceAlert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alert))
	assert.Equal(t, models.AlertStatusActive, alert.Status)

	// Alerts on unmonitored products are rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/alerts", gin.H{
		"user_id":    "U1",
		"product_id": "ghost",
		"conditions": gin.H{"any_drop": true},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAlertFiresThroughAPI(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"product_id":    "P1",
		"current_price": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/alerts", gin.H{
		"user_id":    "U1",
		"product_id": "P1",
		"conditions": gin.H{"target_price": 950},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/products/P1/prices", gin.H{"price": 900})
	require.Equal(t, http.StatusOK, w.Code)

	var update service.PriceUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	require.Len(t, update.Alerts, 1)
	assert.Equal(t, "U1", update.Alerts[0].UserID)
	assert.Equal(t, "P1", update.Alerts[0].ProductID)
}

func TestGetUserAlerts_RequiresUserID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/alerts", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"product_id":    "P1",
		"current_price": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/products/P1/report", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report models.PriceReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1000.0, report.CurrentPrice)
	assert.Len(t, report.Competitors, 3)
}
