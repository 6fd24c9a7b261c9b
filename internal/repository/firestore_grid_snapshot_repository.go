package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/paulmach/orb/encoding/wkt"

	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
)

const gridSnapshotsCollection = "gridSnapshots"

// FirestoreGridSnapshot document stored per poll session
type FirestoreGridSnapshot struct {
	CenterLat           float64   `firestore:"center_lat"`
	CenterLng           float64   `firestore:"center_lng"`
	ExtentWKT           string    `firestore:"extent_wkt"`
	TotalSurvivors      int       `firestore:"total_survivors"`
	FloodCount          int       `firestore:"flood_count"`
	NoFloodCount        int       `firestore:"no_flood_count"`
	BuildingDamageCount int       `firestore:"building_damage_count"`
	FloodedCells        []string  `firestore:"flooded_cells"`
	PredictedCells      []string  `firestore:"predicted_cells"`
	UpdatedAt           time.Time `firestore:"updatedAt"`
	ExpireAt            time.Time `firestore:"expireAt"`
}

// FirestoreGridSnapshotRepository archives the latest grid of each session with a TTL
type FirestoreGridSnapshotRepository struct {
	client   *firestore.Client
	spec     model.GridSpec
	ttlHours int
}

func NewFirestoreGridSnapshotRepository(client *firestore.Client, spec model.GridSpec, ttlHours int) *FirestoreGridSnapshotRepository {
	return &FirestoreGridSnapshotRepository{
		client:   client,
		spec:     spec,
		ttlHours: ttlHours,
	}
}

var _ repository.GridSnapshotRepository = (*FirestoreGridSnapshotRepository)(nil)

func (r *FirestoreGridSnapshotRepository) Save(ctx context.Context, snapshot *model.GridSnapshot) error {
	doc := ToFirestoreGridSnapshot(snapshot, r.spec, r.ttlHours)

	_, err := r.client.Collection(gridSnapshotsCollection).Doc(snapshot.SessionID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save grid snapshot %s: %w", snapshot.SessionID, err)
	}
	return nil
}

// ToFirestoreGridSnapshot flattens a snapshot into its Firestore document
func ToFirestoreGridSnapshot(snapshot *model.GridSnapshot, spec model.GridSpec, ttlHours int) *FirestoreGridSnapshot {
	doc := &FirestoreGridSnapshot{
		CenterLat:           snapshot.Center.Lat(),
		CenterLng:           snapshot.Center.Lon(),
		ExtentWKT:           wkt.MarshalString(helper.GridBounds(spec, snapshot.Center).ToPolygon()),
		TotalSurvivors:      snapshot.Counters.TotalSurvivors,
		FloodCount:          snapshot.Counters.FloodCount,
		NoFloodCount:        snapshot.Counters.NoFloodCount,
		BuildingDamageCount: snapshot.Counters.BuildingDamageCount,
		FloodedCells:        []string{},
		PredictedCells:      []string{},
		UpdatedAt:           snapshot.UpdatedAt,
		ExpireAt:            snapshot.UpdatedAt.Add(time.Duration(ttlHours) * time.Hour),
	}

	for _, cell := range snapshot.BaseLayer.Cells {
		if cell.Flooded {
			doc.FloodedCells = append(doc.FloodedCells, fmt.Sprintf("%d,%d", cell.Row, cell.Col))
		}
	}
	if snapshot.PredictionLayer != nil {
		for _, cell := range snapshot.PredictionLayer.Cells {
			doc.PredictedCells = append(doc.PredictedCells, fmt.Sprintf("%d,%d", cell.Row, cell.Col))
		}
	}

	return doc
}
