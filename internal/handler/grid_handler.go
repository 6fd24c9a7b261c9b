package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/usecase"
)

// GridHandler read side of the rendered grid
type GridHandler struct {
	pollUseCase usecase.PollUseCase
	spec        model.GridSpec
}

func NewGridHandler(pollUseCase usecase.PollUseCase, spec model.GridSpec) *GridHandler {
	return &GridHandler{
		pollUseCase: pollUseCase,
		spec:        spec,
	}
}

// GetGrid GET /grid - counters, viewport and GeoJSON layers
func (h *GridHandler) GetGrid(c *gin.Context) {
	snapshot, err := h.pollUseCase.CurrentGrid()
	if err != nil {
		respondNoSession(c, err)
		return
	}
	c.JSON(http.StatusOK, helper.SnapshotToGridView(snapshot))
}

// GetCounters GET /grid/counters
func (h *GridHandler) GetCounters(c *gin.Context) {
	snapshot, err := h.pollUseCase.CurrentGrid()
	if err != nil {
		respondNoSession(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.Counters)
}

// GetMappingCSV GET /grid/mapping.csv
// lat/lng query parameters override the active session's center.
func (h *GridHandler) GetMappingCSV(c *gin.Context) {
	var center orb.Point

	latText, lngText := c.Query("lat"), c.Query("lng")
	if latText != "" || lngText != "" {
		lat, lng, err := usecase.ParseCoordinates(latText, lngText)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_coordinates",
				"message": "Please enter valid coordinates.",
			})
			return
		}
		center = (&model.Location{Latitude: lat, Longitude: lng}).ToPoint()
	} else {
		snapshot, err := h.pollUseCase.CurrentGrid()
		if err != nil {
			respondNoSession(c, err)
			return
		}
		center = snapshot.Center
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="grid_mapping.csv"`)
	c.Status(http.StatusOK)
	if err := helper.WriteCellMappingCSV(c.Writer, helper.CellMapping(h.spec, center)); err != nil {
		c.Error(err)
	}
}
