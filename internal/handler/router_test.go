package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FloodGrid-App/internal/application"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/service"
	"FloodGrid-App/internal/usecase"
)

type memoryReadingsRepository struct {
	mu       sync.Mutex
	readings []model.Reading
}

func (r *memoryReadingsRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Reading{}, r.readings...), nil
}

func (r *memoryReadingsRepository) Submit(ctx context.Context, reading *model.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, *reading)
	return nil
}

type quietSimulator struct{}

func (quietSimulator) Next() *model.Reading {
	return &model.Reading{Row: 10, Col: 10}
}

func setupTestRouter(t *testing.T, repo *memoryReadingsRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	spec := model.DefaultGridSpec()
	pollUseCase := usecase.NewPollUseCase(
		service.NewGridRenderer(spec),
		quietSimulator{},
		repo,
		time.Hour,
	)
	t.Cleanup(func() { pollUseCase.StopSession(context.Background()) })

	return SetupRouter(
		NewSessionHandler(pollUseCase),
		NewGridHandler(pollUseCase, spec),
		NewReadingsHandler(application.NewReadingsService(repo, spec)),
	)
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t, &memoryReadingsRepository{})

	w := doRequest(router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"FloodGrid-App"}`, w.Body.String())
}

func TestSessions_InvalidCoordinates(t *testing.T) {
	router := setupTestRouter(t, &memoryReadingsRepository{})

	w := doRequest(router, http.MethodPost, "/sessions", gin.H{"latitude": "abc", "longitude": "81.31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_coordinates", resp["error"])
	assert.Equal(t, "Please enter valid coordinates.", resp["message"])

	w = doRequest(router, http.MethodGet, "/sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessions_Lifecycle(t *testing.T) {
	repo := &memoryReadingsRepository{
		readings: []model.Reading{{Row: 1, Col: 1, Survivors: 3, Flood: true}},
	}
	router := setupTestRouter(t, repo)

	w := doRequest(router, http.MethodGet, "/grid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPost, "/sessions", gin.H{"latitude": "21.24", "longitude": "81.31", "show_prediction": true})
	require.Equal(t, http.StatusCreated, w.Code)

	var status model.SessionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Active)
	assert.True(t, status.ShowPrediction)

	w = doRequest(router, http.MethodGet, "/sessions/current", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// the first cycle runs immediately
	assert.Eventually(t, func() bool {
		w := doRequest(router, http.MethodGet, "/sessions/current", nil)
		var s model.SessionStatus
		return json.Unmarshal(w.Body.Bytes(), &s) == nil && s.Cycles >= 1
	}, time.Second, 10*time.Millisecond)

	w = doRequest(router, http.MethodGet, "/grid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, status.SessionID, view["session_id"])
	assert.Contains(t, view, "base_layer")
	assert.Contains(t, view, "prediction_layer")

	w = doRequest(router, http.MethodGet, "/grid/counters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var counters model.Counters
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counters))
	assert.Equal(t, model.Counters{TotalSurvivors: 3, FloodCount: 1, NoFloodCount: 99}, counters)

	w = doRequest(router, http.MethodDelete, "/sessions/current", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(router, http.MethodDelete, "/sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGrid_MappingCSV(t *testing.T) {
	router := setupTestRouter(t, &memoryReadingsRepository{})

	w := doRequest(router, http.MethodGet, "/grid/mapping.csv", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/grid/mapping.csv?lat=200&lng=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/grid/mapping.csv?lat=21.24&lng=81.31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 101)
	assert.Equal(t, []string{"row", "col", "lat", "lon"}, records[0])
}

func TestReadings_SubmitAndList(t *testing.T) {
	router := setupTestRouter(t, &memoryReadingsRepository{})

	w := doRequest(router, http.MethodPost, "/readings", gin.H{"row": 2, "col": 3, "survivors": 1, "flood": "1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/readings", gin.H{"row": 12, "col": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_reading")

	w = doRequest(router, http.MethodGet, "/readings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Readings []model.Reading `json:"readings"`
		Count    int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.True(t, bool(resp.Readings[0].Flood))
}
