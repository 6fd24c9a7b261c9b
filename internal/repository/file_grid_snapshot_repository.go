package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
)

// FileGridSnapshotRepository rewrites a JSON file with the latest grid view on every cycle,
// for static map pages that poll a file instead of the API
type FileGridSnapshotRepository struct {
	outputPath string
}

func NewFileGridSnapshotRepository(outputPath string) repository.GridSnapshotRepository {
	return &FileGridSnapshotRepository{
		outputPath: outputPath,
	}
}

func (r *FileGridSnapshotRepository) Save(ctx context.Context, snapshot *model.GridSnapshot) error {
	data, err := json.Marshal(helper.SnapshotToGridView(snapshot))
	if err != nil {
		return fmt.Errorf("failed to marshal grid view: %w", err)
	}

	// write then rename so readers never see a partial file
	tmp := r.outputPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.outputPath); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}

	log.Printf("💾 Grid view written to %s (%d survivors, %d flooded)",
		r.outputPath, snapshot.Counters.TotalSurvivors, snapshot.Counters.FloodCount)
	return nil
}
