package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"FloodGrid-App/internal/infrastructure/sheets"
	"FloodGrid-App/internal/infrastructure/serial"
)

// Readings backends
const (
	BackendSheets   = "sheets"
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config runtime settings read from the environment
type Config struct {
	Port string

	ReadingsBackend   string
	SheetsEndpointURL string
	SQLitePath        string
	HTTPTimeout       time.Duration

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseDBPassword string

	PollInterval time.Duration

	SnapshotFile             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	SnapshotTTLHours         int

	SerialPort string
	SerialBaud int
}

// LoadDotEnv loads .env if present
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .env file not found, using system environment variables")
	}
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:                     getEnv("PORT", "8080"),
		ReadingsBackend:          strings.ToLower(getEnv("READINGS_BACKEND", BackendSheets)),
		SheetsEndpointURL:        getEnv("SHEETS_ENDPOINT_URL", sheets.DefaultEndpointURL),
		SQLitePath:               getEnv("SQLITE_PATH", "floodgrid.db"),
		SupabaseURL:              os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:          os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseDBPassword:       os.Getenv("SUPABASE_DB_PASSWORD"),
		SnapshotFile:             os.Getenv("SNAPSHOT_FILE"),
		FirestoreProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SerialPort:               os.Getenv("SERIAL_PORT"),
	}

	var err error
	if cfg.PollInterval, err = getDuration("POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SnapshotTTLHours, err = getInt("SNAPSHOT_TTL_HOURS", 2); err != nil {
		return nil, err
	}
	if cfg.SerialBaud, err = getInt("SERIAL_BAUD", serial.DefaultBaudRate); err != nil {
		return nil, err
	}

	switch cfg.ReadingsBackend {
	case BackendSheets, BackendSupabase, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown READINGS_BACKEND %q: expected sheets, supabase, postgres or sqlite", cfg.ReadingsBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return n, nil
}
