package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zerovicio/internal/infrastructure/telemetry"
)

func addPingRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": telemetry.ServiceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
