package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FloodGrid-App/internal/domain/model"
)

func TestNewClient_DefaultEndpoint(t *testing.T) {
	client := NewClient("", time.Second)
	assert.Equal(t, DefaultEndpointURL, client.EndpointURL())
}

func TestClient_GetReadings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"row":1,"col":1,"survivors":3,"buildingDamage":0,"flood":1,"flood_prediction":"0"}]`))
	}))
	defer server.Close()

	readings, err := NewClient(server.URL, time.Second).GetReadings(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 3, readings[0].Survivors)
	assert.True(t, bool(readings[0].Flood))
	assert.False(t, bool(readings[0].FloodPrediction))
}

func TestClient_GetReadingsSkipsMalformedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"row":1,"col":1,"survivors":3,"buildingDamage":0,"flood":1,"flood_prediction":0},
			{"row":"2","col":"4","survivors":"","buildingDamage":"","flood":"","flood_prediction":""},
			{"row":"three","col":1,"survivors":1},
			{"row":5,"col":5,"survivors":2.5}
		]`))
	}))
	defer server.Close()

	readings, err := NewClient(server.URL, time.Second).GetReadings(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, 3, readings[0].Survivors)
	assert.Equal(t, 2, readings[1].Row)
	assert.Equal(t, 4, readings[1].Col)
	assert.Equal(t, 0, readings[1].Survivors)
	assert.False(t, bool(readings[1].Flood))
}

func TestClient_GetReadingsNullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	readings, err := NewClient(server.URL, time.Second).GetReadings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, readings)
	assert.Empty(t, readings)
}

func TestClient_GetReadingsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).GetReadings(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error! Status: 500")
}

func TestClient_PostReading(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	reading := &model.Reading{Row: 4, Col: 9, Survivors: 2, Flood: true, Notes: "Simulated update"}
	ack, err := NewClient(server.URL, time.Second).PostReading(context.Background(), reading)
	require.NoError(t, err)

	assert.Equal(t, "success", ack.Status)
	assert.Equal(t, float64(4), received["row"])
	assert.Equal(t, float64(9), received["col"])
	assert.Equal(t, float64(1), received["flood"])
	assert.Equal(t, float64(0), received["buildingDamage"])
	assert.Equal(t, "Simulated update", received["notes"])
}

func TestClient_PostReadingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).PostReading(context.Background(), &model.Reading{Row: 1, Col: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 20*time.Millisecond).GetReadings(context.Background())
	assert.Error(t, err)
}
