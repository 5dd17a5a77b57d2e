package api

import (
	"net/http"

	"github.com/comprasmart/pricewatch/internal/service"
	"github.com/comprasmart/pricewatch/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(r *gin.Engine, monitor *service.MonitorService, alerts service.AlertService, analytics *service.AnalyticsService, reports *service.ReportService, wsHandler *ws.WebSocketHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	productHandler := NewProductHandler(monitor, analytics)
	alertHandler := NewAlertHandler(alerts)
	reportHandler := NewReportHandler(reports)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleConnection)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/products", productHandler.StartMonitoring)
		v1.POST("/products/:id/prices", productHandler.RecordPrice)
		v1.GET("/products/:id/history", productHandler.GetHistory)
		v1.GET("/products/:id/analytics", productHandler.GetAnalytics)
		v1.GET("/products/:id/seasonality", productHandler.GetSeasonality)
		v1.GET("/products/:id/report", reportHandler.GetReport)
		v1.GET("/products/:id/alerts", alertHandler.GetProductAlerts)

		v1.POST("/alerts", alertHandler.CreateAlert)
		v1.GET("/alerts", alertHandler.GetUserAlerts)
		v1.DELETE("/alerts/:id", alertHandler.CancelAlert)
	}
}
