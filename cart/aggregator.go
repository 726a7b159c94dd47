package cart

import (
	"context"
	"fmt"
	"log"

	"vitrina/models"
)

// ErrNotPersisted marks a mutation that succeeded in memory but could not
// be written to the store. The in-memory cart stays authoritative for the
// session; callers surface this as a warning, never as a failure.
var ErrNotPersisted = fmt.Errorf("cart: state not persisted")

// Candidate is the add-time snapshot of a product. Quantity and subtotal
// are derived by the aggregator, never supplied by the caller.
type Candidate struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductCode  string  `json:"productCode"`
	ProductImage string  `json:"productImage,omitempty"`
	Price        float64 `json:"price"`
}

// Aggregator holds the authoritative in-memory cart for one user and keeps
// it synchronized with the store. Line items are ordered by insertion and
// keyed by product id; adding a product that is already present increments
// its quantity instead of creating a second row.
type Aggregator struct {
	store  Store
	userID string
	items  []models.LineItem
}

func NewAggregator(store Store, userID string) *Aggregator {
	return &Aggregator{store: store, userID: userID}
}

// Hydrate loads the persisted cart. Missing or malformed data degrades to
// an empty cart; hydration never fails the caller.
func (a *Aggregator) Hydrate(ctx context.Context) {
	items, err := a.store.Load(ctx, a.userID)
	if err != nil {
		log.Printf("cart: hydrate failed for %s, starting empty: %v", a.userID, err)
		a.items = nil
		return
	}
	a.items = normalize(items)
}

// normalize drops unusable rows and re-derives subtotals so the
// subtotal == price * quantity invariant holds even for stale stored data.
func normalize(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		it.Subtotal = it.Price * float64(it.Quantity)
		out = append(out, it)
	}
	return out
}

// AddItem merges one unit of the candidate into the cart. If the product is
// already present its quantity is incremented and the subtotal recomputed
// from the originally stored price; the candidate's price is only used for
// new rows, keeping the add-time snapshot immutable.
func (a *Aggregator) AddItem(ctx context.Context, c Candidate) error {
	for i := range a.items {
		if a.items[i].ProductID == c.ProductID {
			a.items[i].Quantity++
			a.items[i].Subtotal = a.items[i].Price * float64(a.items[i].Quantity)
			return a.persist(ctx)
		}
	}

	a.items = append(a.items, models.LineItem{
		ProductID:    c.ProductID,
		ProductName:  c.ProductName,
		ProductCode:  c.ProductCode,
		ProductImage: c.ProductImage,
		Quantity:     1,
		Price:        c.Price,
		Subtotal:     c.Price,
	})
	return a.persist(ctx)
}

// RemoveItem deletes the matching line item. Removing an absent product is
// a no-op, not an error; the caller's view may already be stale.
func (a *Aggregator) RemoveItem(ctx context.Context, productID string) error {
	for i := range a.items {
		if a.items[i].ProductID == productID {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return a.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the quantity on the matching item. Zero or negative
// quantities remove the item entirely; an unknown product id is a no-op.
func (a *Aggregator) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return a.RemoveItem(ctx, productID)
	}
	for i := range a.items {
		if a.items[i].ProductID == productID {
			a.items[i].Quantity = quantity
			a.items[i].Subtotal = a.items[i].Price * float64(quantity)
			return a.persist(ctx)
		}
	}
	return nil
}

// ClearCart empties the cart and persists the empty state.
func (a *Aggregator) ClearCart(ctx context.Context) error {
	a.items = nil
	return a.persist(ctx)
}

// Items returns a copy of the current line items.
func (a *Aggregator) Items() []models.LineItem {
	out := make([]models.LineItem, len(a.items))
	copy(out, a.items)
	return out
}

// TotalItems is the sum of all quantities, counting units rather than
// distinct products.
func (a *Aggregator) TotalItems() int {
	total := 0
	for _, it := range a.items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the sum of all line item subtotals.
func (a *Aggregator) Subtotal() float64 {
	var total float64
	for _, it := range a.items {
		total += it.Subtotal
	}
	return total
}

// persist writes the whole cart as one unit. A write failure is reported
// as ErrNotPersisted but leaves the in-memory state untouched.
func (a *Aggregator) persist(ctx context.Context) error {
	if err := a.store.Save(ctx, a.userID, a.items); err != nil {
		log.Printf("cart: save failed for %s: %v", a.userID, err)
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	return nil
}
