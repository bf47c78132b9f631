package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "0 3 * * *", cfg.PruneSchedule)
	assert.Equal(t, 90, cfg.PruneRetentionDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("PRUNE_SCHEDULE", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	// An empty value still overrides, disabling the pruning job.
	assert.Equal(t, "", cfg.PruneSchedule)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "jobster",
		DBPassword: "pw",
		DBName:     "jobster",
	}
	assert.Equal(t, "postgres://jobster:pw@localhost:5432/jobster?sslmode=disable", cfg.DatabaseURL())
}
