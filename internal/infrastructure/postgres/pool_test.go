package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/pkg/config"
)

func TestPoolConfigFor_Defaults(t *testing.T) {
	cfg := config.DBConfig{Host: "127.0.0.1", Port: 5432, User: "bizflow", Password: "p@ss:word", DBName: "bizflow", SSLMode: "disable"}

	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxConns, pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "bizflow", pc.ConnConfig.Database)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.NotNil(t, pc.AfterConnect)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfigFor_DatabaseURL(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:6543/tienda?sslmode=disable",
		Host:        "ignorado",
		MaxConns:    1,
	}

	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "tienda", pc.ConnConfig.Database)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, int32(1), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
}

func TestPoolConfigFor_InvalidDSN(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "10.0.0.7", lookupIPv4(ctx, "10.0.0.7"))
	assert.Equal(t, "", lookupIPv4(ctx, "::1"))
}
