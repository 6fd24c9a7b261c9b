package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
)

// ErrInvalidReading reading failed validation
var ErrInvalidReading = errors.New("invalid reading")

// ingestFieldCount row,col,survivors,flood,buildingDamage
const ingestFieldCount = 5

// IngestStats counts what an ingest run did
type IngestStats struct {
	Lines     int
	Parsed    int
	Submitted int
	Rejected  int
	Failed    int
}

// IngestService forwards readings received from the field radio to the store
type IngestService struct {
	readingsRepo repository.ReadingsRepository
}

// NewIngestService creates an IngestService
func NewIngestService(readingsRepo repository.ReadingsRepository) *IngestService {
	return &IngestService{
		readingsRepo: readingsRepo,
	}
}

// ParseLine parses "row,col,survivors,flood,buildingDamage", e.g. "1,9,3,0,1".
// All five fields must be non-negative integers.
func ParseLine(line string) (*model.Reading, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != ingestFieldCount {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidReading, ingestFieldCount, len(fields))
	}

	values := make([]int, ingestFieldCount)
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: field %d %q is not an integer", ErrInvalidReading, i+1, field)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: values must be non-negative", ErrInvalidReading)
		}
		values[i] = v
	}

	return &model.Reading{
		Row:            values[0],
		Col:            values[1],
		Survivors:      values[2],
		Flood:          values[3] != 0,
		BuildingDamage: values[4] != 0,
	}, nil
}

// Run reads lines from r until EOF or ctx is cancelled and submits every valid reading.
// Bad lines and failed submissions are logged and skipped.
func (s *IngestService) Run(ctx context.Context, r io.Reader) (*IngestStats, error) {
	stats := &IngestStats{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++
		log.Printf("📡 Received data: %s", line)

		reading, err := ParseLine(line)
		if err != nil {
			stats.Rejected++
			log.Printf("⚠️ Error parsing data: %v", err)
			continue
		}
		stats.Parsed++

		if err := s.readingsRepo.Submit(ctx, reading); err != nil {
			stats.Failed++
			log.Printf("❌ Failed to submit reading (%d,%d): %v", reading.Row, reading.Col, err)
			continue
		}
		stats.Submitted++
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		return stats, fmt.Errorf("failed to read ingest stream: %w", err)
	}
	return stats, nil
}
