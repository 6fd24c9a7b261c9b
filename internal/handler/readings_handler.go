package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"FloodGrid-App/internal/application"
	"FloodGrid-App/internal/domain/model"
)

// ReadingsHandler manual access to the readings store
type ReadingsHandler struct {
	readingsService application.ReadingsService
}

func NewReadingsHandler(readingsService application.ReadingsService) *ReadingsHandler {
	return &ReadingsHandler{
		readingsService: readingsService,
	}
}

// ListReadings GET /readings
func (h *ReadingsHandler) ListReadings(c *gin.Context) {
	readings, err := h.readingsService.ListReadings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "fetch_failed",
			"message": "Failed to fetch readings: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": readings,
		"count":    len(readings),
	})
}

// SubmitReading POST /readings
func (h *ReadingsHandler) SubmitReading(c *gin.Context) {
	var req model.SubmitReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	reading, err := h.readingsService.SubmitReading(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, application.ErrInvalidReading) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_reading",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "submit_failed",
			"message": "Failed to submit reading: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, reading)
}
