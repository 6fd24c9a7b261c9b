package repository

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FloodGrid-App/internal/domain/model"
)

func TestFirestoreGridSnapshotRepository_SaveFailureReturnsErrorWithoutLogging(t *testing.T) {
	// nothing listens here, so every write fails
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")

	client, err := firestore.NewClient(context.Background(), "floodgrid-test")
	require.NoError(t, err)
	defer client.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	repo := NewFirestoreGridSnapshotRepository(client, model.DefaultGridSpec(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	err = repo.Save(ctx, &model.GridSnapshot{
		SessionID: "session-1",
		Center:    orb.Point{81.31, 21.24},
		UpdatedAt: time.Now(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save grid snapshot session-1")
	assert.Empty(t, logs.String())
}
