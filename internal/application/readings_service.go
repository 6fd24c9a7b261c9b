package application

import (
	"context"
	"fmt"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
)

// ReadingsService manual access to the readings store
type ReadingsService interface {
	// ListReadings returns the full dataset
	ListReadings(ctx context.Context) ([]model.Reading, error)

	// SubmitReading validates and stores one reading
	SubmitReading(ctx context.Context, req *model.SubmitReadingRequest) (*model.Reading, error)
}

type readingsServiceImpl struct {
	readingsRepo repository.ReadingsRepository
	spec         model.GridSpec
}

// NewReadingsService creates a ReadingsService
func NewReadingsService(readingsRepo repository.ReadingsRepository, spec model.GridSpec) ReadingsService {
	return &readingsServiceImpl{
		readingsRepo: readingsRepo,
		spec:         spec,
	}
}

func (s *readingsServiceImpl) ListReadings(ctx context.Context) ([]model.Reading, error) {
	readings, err := s.readingsRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return readings, nil
}

func (s *readingsServiceImpl) SubmitReading(ctx context.Context, req *model.SubmitReadingRequest) (*model.Reading, error) {
	if err := s.validateSubmitReadingRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReading, err)
	}

	reading := req.ToReading()
	if err := s.readingsRepo.Submit(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to submit reading: %w", err)
	}
	return reading, nil
}

func (s *readingsServiceImpl) validateSubmitReadingRequest(req *model.SubmitReadingRequest) error {
	if req.Row < 1 || req.Row > s.spec.Rows {
		return fmt.Errorf("row must be between 1 and %d", s.spec.Rows)
	}
	if req.Col < 1 || req.Col > s.spec.Cols {
		return fmt.Errorf("col must be between 1 and %d", s.spec.Cols)
	}
	if req.Survivors < 0 {
		return fmt.Errorf("survivors must not be negative")
	}
	return nil
}
