package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// writeHealth reports the last persistence failure, if any.
type writeHealth interface {
	LastError() error
}

// newMetricsRouter serves /metrics for reg and /healthz. Health is degraded
// while the most recent snapshot write has failed.
func newMetricsRouter(reg *prometheus.Registry, health writeHealth) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	router.GET("/healthz", func(c *gin.Context) {
		if err := health.LastError(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
