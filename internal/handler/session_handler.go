package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/usecase"
)

// SessionHandler starts and stops the poll loop
type SessionHandler struct {
	pollUseCase usecase.PollUseCase
}

func NewSessionHandler(pollUseCase usecase.PollUseCase) *SessionHandler {
	return &SessionHandler{
		pollUseCase: pollUseCase,
	}
}

// StartSession POST /sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	status, err := h.pollUseCase.StartSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_coordinates",
				"message": "Please enter valid coordinates.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to start session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, status)
}

// GetCurrentSession GET /sessions/current
func (h *SessionHandler) GetCurrentSession(c *gin.Context) {
	status, err := h.pollUseCase.Status()
	if err != nil {
		respondNoSession(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// StopSession DELETE /sessions/current
func (h *SessionHandler) StopSession(c *gin.Context) {
	if err := h.pollUseCase.StopSession(c.Request.Context()); err != nil {
		respondNoSession(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondNoSession(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrNoActiveSession) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "no_active_session",
			"message": "No poll session is running",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": err.Error(),
	})
}
