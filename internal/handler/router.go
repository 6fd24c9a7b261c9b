package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName reported by the health check
const ServiceName = "FloodGrid-App"

// SetupRouter registers every route
func SetupRouter(sessionHandler *SessionHandler, gridHandler *GridHandler, readingsHandler *ReadingsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to %s!", ServiceName)
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	sessions := router.Group("/sessions")
	{
		sessions.POST("", sessionHandler.StartSession)
		sessions.GET("/current", sessionHandler.GetCurrentSession)
		sessions.DELETE("/current", sessionHandler.StopSession)
	}

	grid := router.Group("/grid")
	{
		grid.GET("", gridHandler.GetGrid)
		grid.GET("/counters", gridHandler.GetCounters)
		grid.GET("/mapping.csv", gridHandler.GetMappingCSV)
	}

	readings := router.Group("/readings")
	{
		readings.GET("", readingsHandler.ListReadings)
		readings.POST("", readingsHandler.SubmitReading)
	}

	return router
}
