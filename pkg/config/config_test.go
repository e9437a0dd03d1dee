package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "clientes_session", cfg.Session.CookieName)
	assert.Equal(t, time.Hour, cfg.Session.Expiration)
	assert.Equal(t, "postgres://postgres:@localhost:5432/clientes?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_MIGRATE", "false")
	v.Set("SESSION_EXPIRATION_MINUTES", "15")
	v.Set("DATABASE_URL", "postgres://u:p@db/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 15*time.Minute, cfg.Session.Expiration)
	assert.Equal(t, "postgres://u:p@db/x", cfg.DB.ConnectionString())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{User: "app", Password: "p@ss/word", Host: "db", Port: 5432, DBName: "clientes", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/clientes?sslmode=require", c.DSN())
}
