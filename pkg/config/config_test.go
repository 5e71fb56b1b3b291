package config_test

import (
	"testing"

	"github.com/shyakx/erp-system/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "reject", cfg.Payroll.OpenShift)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_DEMO_MODE", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("PAYROLL_OPEN_SHIFT", "MEASURE")
	t.Setenv("DB_MIGRATE", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.DemoMode)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "measure", cfg.Payroll.OpenShift)
	assert.True(t, cfg.DB.Migrate)
}

func TestLoad_InvalidOpenShift(t *testing.T) {
	t.Setenv("PAYROLL_OPEN_SHIFT", "ignore")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "erp", Password: "p@ss:w/rd", DBName: "erp", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%3Aw%2Frd@db:5432/erp?sslmode=disable", c.DSN())
}
