package repository

import (
	"context"
	"fmt"
	"log"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/infrastructure/sheets"
)

// SheetsReadingsRepository readings kept in the remote survey sheet
type SheetsReadingsRepository struct {
	client *sheets.Client
}

func NewSheetsReadingsRepository(client *sheets.Client) repository.ReadingsRepository {
	return &SheetsReadingsRepository{
		client: client,
	}
}

func (r *SheetsReadingsRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	readings, err := r.client.GetReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readings from sheet: %w", err)
	}
	log.Printf("📥 Fetched %d readings from sheet", len(readings))
	return readings, nil
}

func (r *SheetsReadingsRepository) Submit(ctx context.Context, reading *model.Reading) error {
	ack, err := r.client.PostReading(ctx, reading)
	if err != nil {
		return fmt.Errorf("failed to send reading (%d,%d) to sheet: %w", reading.Row, reading.Col, err)
	}
	log.Printf("📤 Reading (%d,%d) sent to sheet: %s", reading.Row, reading.Col, ack.Status)
	return nil
}
