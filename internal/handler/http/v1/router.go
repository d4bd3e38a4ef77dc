package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Координаты и отслеживание туров
	location := api.Group("/location")
	{
		location.POST("", h.recordPoint)
		location.POST("/update", h.recordLocation)
		location.GET("/current/:userId", h.currentLocation)
		location.GET("/history/:userId/:tourId", h.history)
		location.GET("/active-tours", h.activeTours)
		location.POST("/start-tracking/:tourId", h.startTracking)
		location.POST("/stop-tracking/:tourId", h.stopTracking)
	}

	// Экстренные тревоги
	emergency := api.Group("/emergency")
	{
		emergency.POST("/alert", h.triggerAlert)
		emergency.GET("/active/all", h.listActive)
		emergency.GET("/:id", h.getAlert)
		emergency.PATCH("/:id/status", h.updateStatus)
	}

	// Пульт мониторинга
	police := api.Group("/police")
	{
		police.GET("/tours/active", h.policeTours)
		police.GET("/emergency/alerts", h.policeAlerts)
		police.PUT("/emergency/resolve/:alertId", h.policeResolve)
		police.GET("/stats", h.policeStats)
	}

	api.GET("/ws", h.serveWS)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
