package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesiones-api/pkg/config"
)

func TestPoolConfigFor(t *testing.T) {
	cfg := config.DBConfig{Host: "db.local", Port: 5433, User: "kardex", Password: "x", DBName: "concesiones", SSLMode: "disable", MaxConns: 4}

	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.NotNil(t, pc.AfterConnect)
	assert.NotNil(t, pc.ConnConfig.DialFunc)

	cfg.MaxConns = 0
	pc, err = poolConfigFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(10), pc.MaxConns)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/x"})
	assert.Error(t, err)
}

func TestFirstIPv4(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "10.0.0.5", firstIPv4(ctx, "10.0.0.5"))
	assert.Empty(t, firstIPv4(ctx, "::1"))
}
