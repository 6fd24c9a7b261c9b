package main

import (
	"context"
	"fmt"
	"log"

	"FloodGrid-App/internal/config"
	"FloodGrid-App/internal/domain/model"
	domainrepo "FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/infrastructure/database"
	"FloodGrid-App/internal/infrastructure/firestore"
	"FloodGrid-App/internal/infrastructure/sheets"
	"FloodGrid-App/internal/repository"
)

// closer releases a backend connection on shutdown
type closer func() error

func noopCloser() error { return nil }

// buildReadingsRepository connects the backend selected by READINGS_BACKEND
func buildReadingsRepository(cfg *config.Config) (domainrepo.ReadingsRepository, closer, error) {
	switch cfg.ReadingsBackend {
	case config.BackendSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, nil, fmt.Errorf("supabase client initialization failed: %w", err)
		}
		if err := client.HealthCheck(); err != nil {
			return nil, nil, fmt.Errorf("supabase health check failed: %w", err)
		}
		log.Printf("✅ Readings backend: Supabase")
		return repository.NewSupabaseReadingsRepository(client), noopCloser, nil

	case config.BackendPostgres:
		client, err := database.NewPostgreSQLClient(cfg.SupabaseURL, cfg.SupabaseDBPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres client initialization failed: %w", err)
		}
		if err := client.HealthCheck(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("postgres health check failed: %w", err)
		}
		log.Printf("✅ Readings backend: PostgreSQL")
		return repository.NewPostgresReadingsRepository(client), client.Close, nil

	case config.BackendSQLite:
		client, err := database.NewSQLiteClient(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite client initialization failed: %w", err)
		}
		log.Printf("✅ Readings backend: SQLite (%s)", cfg.SQLitePath)
		return repository.NewSQLiteReadingsRepository(client), client.Close, nil

	default:
		client := sheets.NewClient(cfg.SheetsEndpointURL, cfg.HTTPTimeout)
		log.Printf("✅ Readings backend: spreadsheet endpoint %s", client.EndpointURL())
		return repository.NewSheetsReadingsRepository(client), noopCloser, nil
	}
}

// buildSnapshotRepositories returns every configured snapshot sink.
// A Firestore connection failure only disables that sink.
func buildSnapshotRepositories(ctx context.Context, cfg *config.Config, spec model.GridSpec) ([]domainrepo.GridSnapshotRepository, closer) {
	var repos []domainrepo.GridSnapshotRepository
	closeFn := closer(noopCloser)

	if cfg.SnapshotFile != "" {
		repos = append(repos, repository.NewFileGridSnapshotRepository(cfg.SnapshotFile))
		log.Printf("💾 Grid snapshots will be written to %s", cfg.SnapshotFile)
	}

	if cfg.FirestoreProjectID != "" {
		client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			log.Printf("⚠️ Firestore snapshots disabled: %v", err)
		} else {
			repos = append(repos, repository.NewFirestoreGridSnapshotRepository(client.GetClient(), spec, cfg.SnapshotTTLHours))
			closeFn = client.Close
		}
	}

	return repos, closeFn
}
