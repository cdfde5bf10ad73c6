package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats, err := DefaultCategories()
	require.NoError(t, err)

	list := cats.List()
	require.Len(t, list, 3)
	assert.Equal(t, "dry-goods", list[0].ID)

	c, ok := cats.Get("packaged-milk")
	require.True(t, ok)
	assert.Equal(t, "Packaged Milk & Dairy", c.Name)
	assert.Equal(t, "category-dairy", c.Image.ID)

	list[0].Name = "mutated"
	again := cats.List()
	assert.Equal(t, "Dry Grocery", again[0].Name)
}

func TestParseCategories_Rejects(t *testing.T) {
	_, err := ParseCategories([]byte("- name: No Id\n"))
	assert.Error(t, err)

	_, err = ParseCategories([]byte("- id: a\n  name: A\n- id: a\n  name: B\n"))
	assert.Error(t, err)
}
