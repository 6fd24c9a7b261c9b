package repository

import (
	"context"

	"FloodGrid-App/internal/domain/model"
)

// GridSnapshotRepository receives the rendered grid after every poll cycle
type GridSnapshotRepository interface {
	Save(ctx context.Context, snapshot *model.GridSnapshot) error
}
