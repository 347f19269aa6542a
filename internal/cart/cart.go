package cart

import (
	"context"
	"encoding/json"
	"sync"

	"storefront-service/internal/models"

	"go.uber.org/zap"
)

// Key identifies a cart line. Lines are unique per (product id, chosen option)
// tuple: the same product with two different option values is two lines, and
// "no option" only ever matches "no option".
type Key struct {
	ProductID string
	Option    models.OptionValue
}

// Cart holds the shopping cart lines in insertion order and writes the full
// snapshot through to its Store after every mutation. Mutations that would
// break the quantity bounds are no-ops, not errors: the UI disables the
// controls at the boundaries and the engine just refuses to go past them.
type Cart struct {
	mu     sync.Mutex
	items  []models.CartItem
	store  Store
	logger *zap.Logger
}

// New creates a cart backed by store, loading any persisted snapshot. A
// missing or unparseable snapshot yields an empty cart.
func New(store Store, logger *zap.Logger) *Cart {
	c := &Cart{store: store, logger: logger}

	raw, ok, err := store.Load(context.Background())
	if err != nil {
		logger.Warn("Failed to load persisted cart, starting empty", zap.Error(err))
		return c
	}
	if !ok {
		return c
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Debug("Persisted cart is malformed, starting empty", zap.Error(err))
		return c
	}

	c.items = items
	return c
}

// Add puts one unit of product into the cart. An existing line below the
// product's stock limit is incremented; a line already at the limit is left
// untouched. A product with no stock is never added.
func (c *Cart) Add(ctx context.Context, product *models.Product, option models.OptionValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{ProductID: product.ID, Option: option}
	for i := range c.items {
		if c.key(i) == key {
			if c.items[i].Quantity < product.StockQuantity {
				c.items[i].Quantity++
				c.persist(ctx)
			}
			return
		}
	}

	if product.StockQuantity < 1 {
		return
	}

	c.items = append(c.items, models.CartItem{
		Product:        *product,
		SelectedOption: option,
		Quantity:       1,
	})
	c.persist(ctx)
}

// Remove deletes the line matching the full identity key. A line with no
// option is not removed by a call carrying an option, and vice versa.
func (c *Cart) Remove(ctx context.Context, productID string, option models.OptionValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{ProductID: productID, Option: option}
	kept := c.items[:0]
	removed := false
	for i := range c.items {
		if c.key(i) == key {
			removed = true
			continue
		}
		kept = append(kept, c.items[i])
	}
	c.items = kept

	if removed {
		c.persist(ctx)
	}
}

// UpdateQuantity replaces the quantity of an existing line unconditionally.
// The engine does not clamp here; callers keep the controls within
// [1, stock_quantity]. Unknown lines are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, option models.OptionValue, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{ProductID: productID, Option: option}
	for i := range c.items {
		if c.key(i) == key {
			c.items[i].Quantity = quantity
			c.persist(ctx)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subtotal returns the sum of price*quantity over all lines.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for i := range c.items {
		total += c.items[i].Price * float64(c.items[i].Quantity)
	}
	return total
}

func (c *Cart) key(i int) Key {
	return Key{ProductID: c.items[i].ID, Option: c.items[i].SelectedOption}
}

// persist writes the full snapshot through to the store. Persistence is best
// effort: a failed write is logged and the in-memory state stays
// authoritative. Callers must hold c.mu.
func (c *Cart) persist(ctx context.Context) {
	raw, err := json.Marshal(c.items)
	if err != nil {
		c.logger.Error("Failed to serialize cart", zap.Error(err))
		return
	}

	if err := c.store.Save(ctx, raw); err != nil {
		c.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}
