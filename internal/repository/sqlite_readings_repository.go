package repository

import (
	"context"
	"fmt"

	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/infrastructure/database"
)

type SQLiteReadingsRepository struct {
	client *database.SQLiteClient
}

func NewSQLiteReadingsRepository(client *database.SQLiteClient) repository.ReadingsRepository {
	return &SQLiteReadingsRepository{
		client: client,
	}
}

func (r *SQLiteReadingsRepository) FetchAll(ctx context.Context) ([]model.Reading, error) {
	query := `SELECT cell_row, cell_col, survivors, building_damage, flood, flood_prediction, notes
		FROM cell_readings ORDER BY cell_row, cell_col`

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

func (r *SQLiteReadingsRepository) Submit(ctx context.Context, reading *model.Reading) error {
	query := `INSERT INTO cell_readings
		(cell_row, cell_col, survivors, building_damage, flood, flood_prediction, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (cell_row, cell_col) DO UPDATE SET
			survivors = excluded.survivors,
			building_damage = excluded.building_damage,
			flood = excluded.flood,
			flood_prediction = excluded.flood_prediction,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`

	row := ReadingToReadingDB(reading)
	_, err := r.client.DB.ExecContext(ctx, query, row.Row, row.Col, row.Survivors,
		row.BuildingDamage, row.Flood, row.FloodPrediction, row.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert cell reading (%d,%d): %w", reading.Row, reading.Col, err)
	}

	return nil
}
