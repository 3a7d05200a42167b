package migrations

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(files, "sql")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := source.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ON DELETE SET NULL")
	assert.Contains(t, string(body), "booking_datetime TIMESTAMP WITHOUT TIME ZONE")

	next, err := source.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	down, _, err := source.ReadDown(next)
	require.NoError(t, err)
	require.NoError(t, down.Close())
}

func TestRun_UnknownAction(t *testing.T) {
	err := Run("postgres://localhost/none", "sideways", nopLogger{})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
