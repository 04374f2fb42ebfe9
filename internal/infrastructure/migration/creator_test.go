package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "AddUsers", "addusers"},
		{"spaces become underscores", "add shipping table", "add_shipping_table"},
		{"hyphens become underscores", "add-shipping-table", "add_shipping_table"},
		{"repeated separators collapse", "add  --  index", "add_index"},
		{"trailing separator dropped", "add index ", "add_index"},
		{"leading separator dropped", " add", "add"},
		{"special characters removed", "add (new) index!", "add_new_index"},
		{"digits kept", "v2 schema", "v2_schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Shipping Table", "adds the shipping_reservations table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_shipping_table.up.sql"), mf.UpPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: Add Shipping Table")
	assert.Contains(t, string(up), "adds the shipping_reservations table")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
	assert.Contains(t, string(down), "Rollback for adds the shipping_reservations table")
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory lists nothing", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists each pair once", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260101000000_first.up.sql",
			"20260101000000_first.down.sql",
			"20260102000000_second.up.sql",
			"20260102000000_second.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000000_first", "20260102000000_second"}, migrations)
	})
}
