package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/infrastructure/database"
)

// SupabaseReadingsRepository readings in the Supabase cell_readings table
type SupabaseReadingsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseReadingsRepository(client *database.SupabaseClient) repository.ReadingsRepository {
	return &SupabaseReadingsRepository{
		client: client,
	}
}

func (r *SupabaseReadingsRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	var rows []ReadingDB
	data, _, err := r.client.GetClient().From(cellReadingsTable).Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cell readings: %w", err)
	}

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cell readings: %w", err)
	}

	readings := make([]model.Reading, 0, len(rows))
	for i := range rows {
		readings = append(readings, rows[i].ToReading())
	}
	return readings, nil
}

// Submit upserts on (cell_row, cell_col) so the table keeps one row per cell
func (r *SupabaseReadingsRepository) Submit(ctx context.Context, reading *model.Reading) error {
	row := ReadingToReadingDB(reading)
	_, _, err := r.client.GetClient().From(cellReadingsTable).Insert(row, true, "cell_row,cell_col", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert cell reading (%d,%d): %w", reading.Row, reading.Col, err)
	}

	return nil
}
