package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB-01", NormalizeCode(" ab-01 "))
	assert.Equal(t, "AB-01", NormalizeCode("AB-01"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestNewSku(t *testing.T) {
	t.Run("creates sku with normalized code", func(t *testing.T) {
		sku, err := NewSku(" ab-01 ", " 4901234567890 ", " Widget ")
		require.NoError(t, err)

		assert.Equal(t, "AB-01", sku.Code)
		assert.Equal(t, "4901234567890", sku.MakerCode)
		assert.Equal(t, "Widget", sku.Name)
		assert.NotEmpty(t, sku.ID)
		assert.Equal(t, 1, sku.GetVersion())
	})

	t.Run("publishes SkuCreated event", func(t *testing.T) {
		sku, err := NewSku("AB-02", "", "")
		require.NoError(t, err)

		events := sku.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSkuCreated, events[0].EventType())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewSku("  ", "", "")
		require.Error(t, err)
	})

	t.Run("rejects overlong code", func(t *testing.T) {
		_, err := NewSku(strings.Repeat("A", 65), "", "")
		require.Error(t, err)
	})
}

func TestSku_Backfill(t *testing.T) {
	t.Run("fills empty fields only", func(t *testing.T) {
		sku, err := NewSku("AB-01", "", "")
		require.NoError(t, err)

		changed := sku.Backfill("4901234567890", "Widget")
		assert.True(t, changed)
		assert.Equal(t, "4901234567890", sku.MakerCode)
		assert.Equal(t, "Widget", sku.Name)
	})

	t.Run("never overwrites populated fields", func(t *testing.T) {
		sku, err := NewSku("AB-01", "4901234567890", "Widget")
		require.NoError(t, err)

		changed := sku.Backfill("9999999999999", "Other")
		assert.False(t, changed)
		assert.Equal(t, "4901234567890", sku.MakerCode)
		assert.Equal(t, "Widget", sku.Name)
	})

	t.Run("blank input changes nothing", func(t *testing.T) {
		sku, err := NewSku("AB-01", "", "")
		require.NoError(t, err)
		assert.False(t, sku.Backfill("  ", ""))
	})
}
