package repository

import (
	"context"

	"FloodGrid-App/internal/domain/model"
)

// ReadingsRepository the store the field readings live in
type ReadingsRepository interface {
	// FetchAll returns every reading currently held by the store
	FetchAll(ctx context.Context) ([]model.Reading, error)
	// Submit appends or updates one reading
	Submit(ctx context.Context, reading *model.Reading) error
}
