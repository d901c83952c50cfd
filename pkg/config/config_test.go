package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "catalogo-api", cfg.App.Name)
	assert.True(t, cfg.App.SwaggerEnabled)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.AMQP.URL, "sin AMQP_URL se usa el publicador no-op")
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("PAGINATION_DEFAULT_LIMIT", "10")
	v.Set("PAGINATION_MAX_LIMIT", "50")
	v.Set("SWAGGER_ENABLED", "false")
	v.Set("HTTP_PORT", 9090)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
	assert.False(t, cfg.App.SwaggerEnabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestFromViper_InvalidPagination(t *testing.T) {
	v := viper.New()
	v.Set("PAGINATION_DEFAULT_LIMIT", "200")
	v.Set("PAGINATION_MAX_LIMIT", "100")

	_, err := fromViper(v)
	require.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/catalogo?sslmode=disable", c.ConnectionString(),
		"la contraseña debe ir codificada")

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
