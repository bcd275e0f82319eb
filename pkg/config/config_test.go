package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Ledger.LowStockThreshold)
	assert.Equal(t, "goods_value", cfg.Ledger.CustomerSpentPolicy)
}

func TestLoad_LocalStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "LOCAL")
	t.Setenv("LOCAL_DATA_PATH", "/tmp/x.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverLocal, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.json", cfg.Store.LocalDataPath)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "bizflow", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/bizflow?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}
