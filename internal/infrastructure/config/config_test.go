package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "planner-connector", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Minute, cfg.HTTP.WriteTimeout)
	assert.Equal(t, int64(100<<20), cfg.HTTP.MaxBodySize)
	assert.Equal(t, "Working hours", cfg.Connector.Calendar)
}

func TestValidateConnectionPool(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50
	cfg.Database.MaxOpenConns = 25

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidateProductionRequirements(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Connector.Company = "Test Company"
		return cfg
	}

	require.NoError(t, base().validate())

	noPassword := base()
	noPassword.Database.Password = ""
	assert.Error(t, noPassword.validate())

	noSSL := base()
	noSSL.Database.SSLMode = "disable"
	assert.Error(t, noSSL.validate())

	noCompany := base()
	noCompany.Connector.Company = ""
	assert.Error(t, noCompany.validate())
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "erp",
		Password: "p@ss w0rd/#",
		DBName:   "erp",
		SSLMode:  "require",
	}
	dsn := d.DSN()

	assert.True(t, strings.HasPrefix(dsn, "postgres://"))
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss w0rd/#", "raw special characters must be escaped")
}
