package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"FloodGrid-App/internal/domain/model"
)

// DefaultEndpointURL Apps Script web app in front of the survey sheet
const DefaultEndpointURL = "https://script.google.com/macros/s/AKfycbwNrmVyiFoLnMNrEB4bJapW96p-NHtf2K1bAZDly3fjmXduw1zKAziw6twGhoEbozVs5A/exec"

// Client talks to the spreadsheet web app: GET returns every row, POST appends or updates one
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient creates a client for endpointURL
func NewClient(endpointURL string, timeout time.Duration) *Client {
	if endpointURL == "" {
		endpointURL = DefaultEndpointURL
	}
	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// EndpointURL the URL this client talks to
func (c *Client) EndpointURL() string {
	return c.endpointURL
}

// GetReadings fetches the full dataset
func (c *Client) GetReadings(ctx context.Context) ([]model.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error! Status: %d", resp.StatusCode)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to parse readings: %w", err)
	}

	// one malformed row must not blank the whole grid
	readings := make([]model.Reading, 0, len(rows))
	for i, row := range rows {
		var reading model.Reading
		if err := json.Unmarshal(row, &reading); err != nil {
			log.Printf("⚠️ Skipping sheet row %d: %v", i+1, err)
			continue
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// PostReading sends one reading and returns the web app's acknowledgment
func (c *Client) PostReading(ctx context.Context, reading *model.Reading) (*model.SubmitAck, error) {
	body, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reading: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP error! Status: %d: %s", resp.StatusCode, string(respBody))
	}

	var ack model.SubmitAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("failed to parse acknowledgment: %w", err)
	}

	return &ack, nil
}
