package cart

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct(id string, stock int, price float64) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      "Shoes",
		Brand:         "Nike",
		Price:         price,
		StockQuantity: stock,
		ReleaseDate:   models.NewReleaseDate(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)),
	}
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	return New(NewMemoryStore(), zap.NewNop())
}

func TestAddIncrementsUpToStockLimit(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	p := testProduct("p1", 2, 10)

	c.Add(ctx, p, models.NoOption())
	c.Add(ctx, p, models.NoOption())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// A third add is a no-op, not an error.
	c.Add(ctx, p, models.NoOption())

	items = c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddDistinctOptionsAreDistinctLines(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	p := testProduct("p1", 5, 10)

	c.Add(ctx, p, models.Option("M"))
	c.Add(ctx, p, models.Option("L"))
	c.Add(ctx, p, models.NoOption())
	c.Add(ctx, p, models.Option("M"))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, models.Option("M"), items[0].SelectedOption)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
}

func TestAddOutOfStockProduct(t *testing.T) {
	c := newTestCart(t)

	c.Add(context.Background(), testProduct("p1", 0, 10), models.NoOption())

	assert.Zero(t, c.Len())
}

func TestRemoveMatchesExactIdentityKey(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()
	p := testProduct("p1", 5, 10)

	c.Add(ctx, p, models.NoOption())
	c.Add(ctx, p, models.Option("M"))

	// Removing with an option must not touch the option-less line.
	c.Remove(ctx, "p1", models.Option("M"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.NoOption(), items[0].SelectedOption)

	// And vice versa: an option-less remove leaves option lines alone.
	c.Add(ctx, p, models.Option("L"))
	c.Remove(ctx, "p1", models.NoOption())

	items = c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.Option("L"), items[0].SelectedOption)
}

func TestRemoveUnknownLineIsNoop(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	c.Add(ctx, testProduct("p1", 5, 10), models.NoOption())
	c.Remove(ctx, "p2", models.NoOption())

	assert.Equal(t, 1, c.Len())
}

func TestUpdateQuantityReplacesUnconditionally(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	c.Add(ctx, testProduct("p1", 5, 10), models.NoOption())
	c.UpdateQuantity(ctx, "p1", models.NoOption(), 4)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// Unknown lines are ignored, nothing is created.
	c.UpdateQuantity(ctx, "p9", models.NoOption(), 3)
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	c.Add(ctx, testProduct("p1", 5, 10), models.NoOption())
	c.Add(ctx, testProduct("p2", 5, 20), models.NoOption())
	c.Clear(ctx)

	assert.Zero(t, c.Len())
	assert.Zero(t, c.Subtotal())
}

func TestSubtotal(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	p1 := testProduct("p1", 5, 10.5)
	c.Add(ctx, p1, models.NoOption())
	c.Add(ctx, p1, models.NoOption())
	c.Add(ctx, testProduct("p2", 5, 20), models.NoOption())

	assert.InDelta(t, 2*10.5+20, c.Subtotal(), 1e-9)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c := New(store, zap.NewNop())
	c.Add(ctx, testProduct("p1", 5, 10), models.Option("42"))
	c.Add(ctx, testProduct("p2", 3, 25), models.NoOption())
	c.UpdateQuantity(ctx, "p2", models.NoOption(), 3)

	reloaded := New(store, zap.NewNop())
	assert.Equal(t, c.Items(), reloaded.Items())
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), []byte("{not json")))

	c := New(store, zap.NewNop())
	assert.Zero(t, c.Len())
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	ctx := context.Background()

	c := New(NewFileStore(path), zap.NewNop())
	c.Add(ctx, testProduct("p1", 5, 10), models.Option("M"))

	reloaded := New(NewFileStore(path), zap.NewNop())
	assert.Equal(t, c.Items(), reloaded.Items())

	// Clearing the store removes the file; the next load starts empty.
	require.NoError(t, NewFileStore(path).Clear(ctx))
	empty := New(NewFileStore(path), zap.NewNop())
	assert.Zero(t, empty.Len())
}
