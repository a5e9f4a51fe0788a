package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"tvcorporativa/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadUnknownTableIsEmpty(t *testing.T) {
	db := newTestDB(t)
	rows, err := db.ReadTable(context.Background(), "news", repository.NewsColumns)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteReadRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := []repository.Row{
		{"id": "1", "title": "Primeira", "is_active": "TRUE", "order": "2"},
		{"id": "2", "title": "Segunda", "is_active": "SIM", "order": "0"},
	}
	require.NoError(t, db.WriteTable(ctx, "news", repository.NewsColumns, in))

	out, err := db.ReadTable(ctx, "news", repository.NewsColumns)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// stored order preserved
	assert.Equal(t, "1", out[0]["id"])
	assert.Equal(t, "2", out[1]["id"])
	// missing schema columns read as empty
	assert.Equal(t, "", out[0]["description"])
	assert.Equal(t, "", out[0]["image_url"])
}

func TestWriteIsFullOverwrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WriteTable(ctx, "clocks", repository.ClockColumns, []repository.Row{
		{"id": "a", "label": "SP", "tz": "America/Sao_Paulo"},
		{"id": "b", "label": "NY", "tz": "America/New_York"},
	}))
	require.NoError(t, db.WriteTable(ctx, "clocks", repository.ClockColumns, []repository.Row{
		{"id": "c", "label": "Lisboa", "tz": "Europe/Lisbon"},
	}))

	out, err := db.ReadTable(ctx, "clocks", repository.ClockColumns)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0]["id"])
}

func TestTablesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WriteTable(ctx, "settings", repository.SettingColumns, []repository.Row{
		{"key": "news_interval_sec", "value": "10"},
	}))
	require.NoError(t, db.WriteTable(ctx, "news", repository.NewsColumns, []repository.Row{
		{"id": "1", "title": "x"},
	}))

	settings, err := db.ReadTable(ctx, "settings", repository.SettingColumns)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "10", settings[0]["value"])
}

// Columns dropped from the schema do not survive a rewrite.
func TestRetiredColumnsDropped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	wide := []string{"id", "label", "legacy"}
	require.NoError(t, db.WriteTable(ctx, "t", wide, []repository.Row{
		{"id": "1", "label": "x", "legacy": "old"},
	}))

	narrow := []string{"id", "label"}
	rows, err := db.ReadTable(ctx, "t", narrow)
	require.NoError(t, err)
	require.NoError(t, db.WriteTable(ctx, "t", narrow, rows))

	out, err := db.ReadTable(ctx, "t", wide)
	require.NoError(t, err)
	assert.Equal(t, "", out[0]["legacy"])
}
