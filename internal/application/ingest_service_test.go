package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FloodGrid-App/internal/domain/model"
)

type recordingRepository struct {
	mu        sync.Mutex
	submitted []model.Reading
	failRow   int
}

func (r *recordingRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Reading{}, r.submitted...), nil
}

func (r *recordingRepository) Submit(ctx context.Context, reading *model.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRow != 0 && reading.Row == r.failRow {
		return errors.New("sheet unavailable")
	}
	r.submitted = append(r.submitted, *reading)
	return nil
}

func TestParseLine(t *testing.T) {
	reading, err := ParseLine("1,9,3,0,1\r\n")
	require.NoError(t, err)
	assert.Equal(t, &model.Reading{Row: 1, Col: 9, Survivors: 3, Flood: false, BuildingDamage: true}, reading)

	reading, err = ParseLine(" 4, 2, 0, 1, 0 ")
	require.NoError(t, err)
	assert.True(t, bool(reading.Flood))
	assert.False(t, bool(reading.BuildingDamage))
}

func TestParseLine_Rejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1,2,3,4"},
		{"too many fields", "1,2,3,4,5,6"},
		{"not a number", "1,a,3,0,1"},
		{"negative", "1,2,-3,0,1"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			assert.ErrorIs(t, err, ErrInvalidReading)
		})
	}
}

func TestIngestService_Run(t *testing.T) {
	repo := &recordingRepository{failRow: 7}
	input := strings.Join([]string{
		"1,9,3,0,1",
		"",
		"garbage",
		"7,7,1,1,1",
		"2,2,0,1,0",
	}, "\n")

	stats, err := NewIngestService(repo).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, &IngestStats{Lines: 4, Parsed: 3, Submitted: 2, Rejected: 1, Failed: 1}, stats)
	require.Len(t, repo.submitted, 2)
	assert.Equal(t, 1, repo.submitted[0].Row)
	assert.Equal(t, 2, repo.submitted[1].Row)
}

func TestIngestService_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIngestService(&recordingRepository{}).Run(ctx, strings.NewReader("1,1,1,1,1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadingsService_SubmitReading(t *testing.T) {
	repo := &recordingRepository{}
	svc := NewReadingsService(repo, model.DefaultGridSpec())

	reading, err := svc.SubmitReading(context.Background(), &model.SubmitReadingRequest{Row: 3, Col: 4, Survivors: 2, Flood: true})
	require.NoError(t, err)
	assert.Equal(t, 3, reading.Row)

	readings, err := svc.ListReadings(context.Background())
	require.NoError(t, err)
	assert.Len(t, readings, 1)
}

func TestReadingsService_SubmitReadingValidation(t *testing.T) {
	svc := NewReadingsService(&recordingRepository{}, model.DefaultGridSpec())

	tests := []struct {
		name string
		req  model.SubmitReadingRequest
	}{
		{"row zero", model.SubmitReadingRequest{Row: 0, Col: 1}},
		{"row too big", model.SubmitReadingRequest{Row: 11, Col: 1}},
		{"col too big", model.SubmitReadingRequest{Row: 1, Col: 11}},
		{"negative survivors", model.SubmitReadingRequest{Row: 1, Col: 1, Survivors: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitReading(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidReading)
		})
	}
}

func TestReadingsService_SubmitFailure(t *testing.T) {
	svc := NewReadingsService(&recordingRepository{failRow: 5}, model.DefaultGridSpec())

	_, err := svc.SubmitReading(context.Background(), &model.SubmitReadingRequest{Row: 5, Col: 5})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidReading)
}
