package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient archive of grid snapshots
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient connects to projectID.
// On Cloud Run the default credentials are used, locally credentialsFile is tried first.
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var client *firestore.Client
	var err error

	if os.Getenv("K_SERVICE") != "" {
		log.Printf("☁️ Cloud Run detected: using default credentials")
		client, err = firestore.NewClient(ctx, projectID)
	} else if credentialsFile == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else if _, statErr := os.Stat(credentialsFile); statErr != nil {
		log.Printf("⚠️ Credentials file not found: %s, trying default credentials", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		log.Printf("📄 Using credentials file: %s", credentialsFile)
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	log.Printf("✅ Firestore client initialized for project: %s", projectID)
	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
