package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo counts list reads so tests can see cache hits.
type countingRepo struct {
	*JSONRepo
	lists int
}

func (c *countingRepo) listChecked(ctx context.Context) ([]Product, bool, error) {
	c.lists++
	return c.JSONRepo.listChecked(ctx)
}

// plainRepo hides listChecked so the cache falls back to List.
type plainRepo struct{ Repository }

func TestCached_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{JSONRepo: newTestRepo(t)}
	view := NewCached(repo)

	p, err := repo.Add(ctx, validInput("Rice"), testImage)
	require.NoError(t, err)

	ps, err := view.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	_, _ = view.List(ctx)
	got, ok, err := view.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 1, repo.lists)

	f := validInput("Ice Cream")
	f.Category = "frozen-foods"
	f.IsFeatured = true
	_, err = repo.Add(ctx, f, testImage)
	require.NoError(t, err)

	ps, _ = view.List(ctx)
	assert.Len(t, ps, 1, "stale until invalidated")

	view.Invalidate()
	ps, _ = view.List(ctx)
	assert.Len(t, ps, 2)
	assert.Equal(t, 2, repo.lists)

	featured, _ := view.Featured(ctx)
	require.Len(t, featured, 1)
	assert.Equal(t, "Ice Cream", featured[0].Name)

	frozen, _ := view.ByCategory(ctx, "frozen-foods")
	assert.Len(t, frozen, 1)
}

func TestCached_DoesNotKeepFallbackList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	view := NewCached(repo)
	require.NoError(t, os.WriteFile(repo.file.Path(), []byte("[{"), 0o644))

	ps, err := view.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)

	rice := newProduct(validInput("Rice"), testImage)
	require.NoError(t, repo.file.Save([]Product{rice}))

	ps, err = view.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1, "repaired file is read without Invalidate")
	assert.Equal(t, rice.ID, ps[0].ID)
}

func TestCached_PlainRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	view := NewCached(plainRepo{repo})

	_, err := repo.Add(ctx, validInput("Rice"), testImage)
	require.NoError(t, err)
	ps, err := view.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 1)

	_, err = repo.Add(ctx, validInput("Lentils"), testImage)
	require.NoError(t, err)
	ps, _ = view.List(ctx)
	assert.Len(t, ps, 1, "kept until invalidated")
}
