package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/validation"
)

func newTestRepo(t *testing.T) *JSONRepo {
	t.Helper()
	cats, err := DefaultCategories()
	require.NoError(t, err)
	return NewJSONRepo(filepath.Join(t.TempDir(), "products.json"), cats, zap.NewNop())
}

func validInput(name string) Input {
	return Input{
		Name:        name,
		Description: "Long enough description",
		Price:       decimal.RequireFromString("120.50"),
		Stock:       4,
		Category:    "dry-goods",
	}
}

var testImage = Image{ImageURL: "/uploads/rice.png", ImageHint: "product package"}

func TestAdd_FieldsAndUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	in := validInput("Basmati Rice")
	in.ExpiryDate = "2027-01-01"
	in.IsFeatured = true

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p, err := repo.Add(ctx, in, testImage)
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true

		assert.Equal(t, in.Name, p.Name)
		assert.Equal(t, in.Description, p.Description)
		assert.True(t, in.Price.Equal(p.Price))
		assert.Equal(t, in.Stock, p.Stock)
		assert.Equal(t, in.Category, p.Category)
		assert.Equal(t, in.ExpiryDate, p.ExpiryDate)
		assert.True(t, p.IsFeatured)
		assert.Equal(t, testImage.ImageURL, p.Image.ImageURL)
		assert.Equal(t, in.Name, p.Image.Description)
		assert.NotEmpty(t, p.Image.ID)
	}
}

func TestAdd_PrependsNewest(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first, err := repo.Add(ctx, validInput("First"), testImage)
	require.NoError(t, err)
	second, err := repo.Add(ctx, validInput("Second"), testImage)
	require.NoError(t, err)

	ps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, second.ID, ps[0].ID)
	assert.Equal(t, first.ID, ps[1].ID)
}

func TestAdd_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Add(ctx, Input{Name: "x", Description: "short", Price: decimal.Zero, Stock: -1}, testImage)
	require.Error(t, err)
	fields := validation.FieldErrors(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "stock")
	assert.Contains(t, fields, "category")

	in := validInput("Rice")
	in.Category = "electronics"
	_, err = repo.Add(ctx, in, testImage)
	assert.Contains(t, validation.FieldErrors(err), "category")

	in = validInput("Rice")
	in.Price = decimal.RequireFromString("1.999")
	_, err = repo.Add(ctx, in, testImage)
	assert.Equal(t, []string{"Price can have at most 2 decimal places."}, validation.FieldErrors(err)["price"])

	ps, _ := repo.List(ctx)
	assert.Empty(t, ps)
}

func TestGet_Missing(t *testing.T) {
	_, ok, err := newTestRepo(t).Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_KeepsImageUnlessReplaced(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	p, err := repo.Add(ctx, validInput("Milk"), testImage)
	require.NoError(t, err)

	in := validInput("Milk 1L")
	in.Stock = 9
	up, prev, err := repo.Update(ctx, p.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, p.Image, prev)
	assert.Equal(t, "Milk 1L", up.Name)
	assert.Equal(t, 9, up.Stock)
	assert.Equal(t, p.Image, up.Image)

	up, prev, err = repo.Update(ctx, p.ID, in, &Image{ImageURL: "/uploads/new.png"})
	require.NoError(t, err)
	assert.Equal(t, testImage.ImageURL, prev.ImageURL)
	assert.Equal(t, "/uploads/new.png", up.Image.ImageURL)
	assert.Equal(t, p.Image.ID, up.Image.ID)
	assert.Equal(t, p.Image.ImageHint, up.Image.ImageHint)

	got, ok, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, up.Image, got.Image)
}

func TestUpdate_NotFound(t *testing.T) {
	_, _, err := newTestRepo(t).Update(context.Background(), "nope", validInput("Milk"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	keep, _ := repo.Add(ctx, validInput("Keep"), testImage)
	gone, _ := repo.Add(ctx, validInput("Gone"), testImage)

	deleted, err := repo.Delete(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, gone.ID, deleted.ID)

	_, ok, _ := repo.Get(ctx, gone.ID)
	assert.False(t, ok)
	_, ok, _ = repo.Get(ctx, keep.ID)
	assert.True(t, ok)

	_, err = repo.Delete(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	f := validInput("Frozen Peas")
	f.Category = "frozen-foods"
	f.IsFeatured = true
	_, _ = repo.Add(ctx, f, testImage)
	_, _ = repo.Add(ctx, validInput("Lentils"), testImage)

	featured, err := repo.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Frozen Peas", featured[0].Name)

	dry, err := repo.ListByCategory(ctx, "dry-goods")
	require.NoError(t, err)
	require.Len(t, dry, 1)
	assert.Equal(t, "Lentils", dry[0].Name)
}

func TestCorruptFile_ReadsEmptyRefusesWrite(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, os.WriteFile(repo.file.Path(), []byte("[{"), 0o644))

	ps, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)

	_, err = repo.Add(ctx, validInput("Rice"), testImage)
	require.Error(t, err)

	raw, _ := os.ReadFile(repo.file.Path())
	assert.Equal(t, "[{", string(raw))
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Add(ctx, validInput("Rice"), testImage)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ps, _ := repo.List(ctx)
	assert.Len(t, ps, 20)
}

func TestRoundTrip_OptionalFieldsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	p, err := repo.Add(ctx, validInput("Plain"), testImage)
	require.NoError(t, err)

	raw, err := os.ReadFile(repo.file.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "expiryDate")
	assert.NotContains(t, string(raw), "isFeatured")

	got, ok, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, p.Price.Equal(got.Price))
	got.Price = p.Price
	assert.Equal(t, p, got)
}
