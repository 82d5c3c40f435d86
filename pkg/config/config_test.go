package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("POSTGRES_CONN_STR", "host=localhost user=app")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "testdb")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "/tmp/creds.json", cfg.FirebaseCredentialsPath)
	assert.Equal(t, "host=localhost user=app", cfg.PostgresConnStr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "testdb", cfg.MongoDatabase)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")
	t.Setenv("POSTGRES_CONN_STR", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "churchconnect", cfg.MongoDatabase)
	assert.Empty(t, cfg.PostgresConnStr)
	assert.Empty(t, cfg.MongoURI)
}

func TestInitDBRequiresConnectionStrings(t *testing.T) {
	_, err := InitDB(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_CONN_STR")

	_, err = InitDB(&Config{PostgresConnStr: "host=localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}
