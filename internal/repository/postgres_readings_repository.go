package repository

import (
	"context"
	"fmt"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/infrastructure/database"
)

type PostgresReadingsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresReadingsRepository(client *database.PostgreSQLClient) repository.ReadingsRepository {
	return &PostgresReadingsRepository{
		client: client,
	}
}

func (r *PostgresReadingsRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	query := `SELECT cell_row, cell_col, survivors, building_damage, flood, flood_prediction, notes
		FROM cell_readings ORDER BY updated_at, cell_row, cell_col`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cell readings: %w", err)
	}
	defer rows.Close()

	readings := []model.Reading{}
	for rows.Next() {
		var row ReadingDB
		if err := rows.Scan(&row.Row, &row.Col, &row.Survivors, &row.BuildingDamage,
			&row.Flood, &row.FloodPrediction, &row.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan cell reading: %w", err)
		}
		readings = append(readings, row.ToReading())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cell readings: %w", err)
	}

	return readings, nil
}

func (r *PostgresReadingsRepository) Submit(ctx context.Context, reading *model.Reading) error {
	query := `INSERT INTO cell_readings
		(cell_row, cell_col, survivors, building_damage, flood, flood_prediction, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (cell_row, cell_col) DO UPDATE SET
			survivors = EXCLUDED.survivors,
			building_damage = EXCLUDED.building_damage,
			flood = EXCLUDED.flood,
			flood_prediction = EXCLUDED.flood_prediction,
			notes = EXCLUDED.notes,
			updated_at = now()`

	row := ReadingToReadingDB(reading)
	_, err := r.client.DB.ExecContext(ctx, query, row.Row, row.Col, row.Survivors,
		row.BuildingDamage, row.Flood, row.FloodPrediction, row.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert cell reading (%d,%d): %w", reading.Row, reading.Col, err)
	}

	return nil
}
