package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgreSQLClient_RequiresSettings(t *testing.T) {
	_, err := NewPostgreSQLClient("", "secret")
	assert.Error(t, err)

	_, err = NewPostgreSQLClient("https://example.supabase.co", "")
	assert.Error(t, err)
}

func TestPostgreSQLClient_HealthCheck(t *testing.T) {
	assert.Error(t, (&PostgreSQLClient{}).HealthCheck())

	// nothing listens on port 1
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=postgres dbname=postgres sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	client := &PostgreSQLClient{DB: db}
	defer client.Close()

	assert.Error(t, client.HealthCheck())
}
