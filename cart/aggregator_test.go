package cart

import (
	"context"
	"fmt"
	"testing"

	"vitrina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidate(id string, price float64) Candidate {
	return Candidate{
		ProductID:   id,
		ProductName: "Product " + id,
		ProductCode: "C-" + id,
		Price:       price,
	}
}

func hydrated(t *testing.T, store Store, userID string) *Aggregator {
	t.Helper()
	agg := NewAggregator(store, userID)
	agg.Hydrate(context.Background())
	return agg
}

func TestAddItemMergesByProductID(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))

	items := agg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 200.0, items[0].Subtotal)
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	// A later catalog price change must not rewrite the stored snapshot.
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 999)))

	items := agg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 200.0, items[0].Subtotal)
}

func TestSubtotalInvariantAndUniqueness(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("P%d", i%3)
		require.NoError(t, agg.AddItem(ctx, testCandidate(id, float64(10*(i%3+1)))))
	}
	require.NoError(t, agg.UpdateQuantity(ctx, "P0", 7))
	require.NoError(t, agg.UpdateQuantity(ctx, "P2", 4))

	seen := map[string]bool{}
	for _, it := range agg.Items() {
		assert.Equal(t, it.Price*float64(it.Quantity), it.Subtotal)
		assert.GreaterOrEqual(t, it.Quantity, 1)
		assert.False(t, seen[it.ProductID], "duplicate product id %s", it.ProductID)
		seen[it.ProductID] = true
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	before := agg.Items()

	require.NoError(t, agg.RemoveItem(ctx, "missing"))
	assert.Equal(t, before, agg.Items())
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.UpdateQuantity(ctx, "P1", 0))

	assert.Empty(t, agg.Items())
	assert.Equal(t, 0, agg.TotalItems())
}

func TestUpdateQuantityMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.UpdateQuantity(ctx, "missing", 5))

	items := agg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestTotalsAggregation(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, NewMemStore(), "u1")

	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.AddItem(ctx, testCandidate("P2", 50)))

	assert.Equal(t, 3, agg.TotalItems())
	assert.Equal(t, 250.0, agg.Subtotal())
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	agg := hydrated(t, store, "u1")
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.AddItem(ctx, testCandidate("P2", 50)))
	require.NoError(t, agg.UpdateQuantity(ctx, "P1", 3))

	reloaded := hydrated(t, store, "u1")
	assert.Equal(t, agg.Items(), reloaded.Items(), "round trip must be field-for-field and order-preserving")
}

func TestCorruptedStorageRecovery(t *testing.T) {
	store := NewMemStore()
	store.Corrupt("u1")

	agg := hydrated(t, store, "u1")
	assert.Empty(t, agg.Items())
	assert.Equal(t, 0, agg.TotalItems())

	// The cart must remain usable after recovery.
	require.NoError(t, agg.AddItem(context.Background(), testCandidate("P1", 10)))
	assert.Equal(t, 1, agg.TotalItems())
}

func TestClearCartResetsFully(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	agg := hydrated(t, store, "u1")
	require.NoError(t, agg.AddItem(ctx, testCandidate("P1", 100)))
	require.NoError(t, agg.ClearCart(ctx))

	assert.Equal(t, 0, agg.TotalItems())
	assert.Equal(t, 0.0, agg.Subtotal())

	reloaded := hydrated(t, store, "u1")
	assert.Empty(t, reloaded.Items())
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context, userID string) ([]models.LineItem, error) {
	return nil, nil
}

func (failingStore) Save(ctx context.Context, userID string, items []models.LineItem) error {
	return fmt.Errorf("quota exceeded")
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	agg := hydrated(t, failingStore{}, "u1")

	err := agg.AddItem(ctx, testCandidate("P1", 100))
	require.ErrorIs(t, err, ErrNotPersisted)

	// The mutation itself still applied.
	assert.Equal(t, 1, agg.TotalItems())
	assert.Equal(t, 100.0, agg.Subtotal())
}

func TestHydrateNormalizesStoredRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	require.NoError(t, store.Save(ctx, "u1", []models.LineItem{
		{ProductID: "P1", Quantity: 2, Price: 10, Subtotal: 999}, // stale subtotal
		{ProductID: "", Quantity: 1, Price: 5},                   // unusable row
		{ProductID: "P2", Quantity: 0, Price: 5},                 // below minimum quantity
		{ProductID: "P1", Quantity: 1, Price: 10},                // duplicate key
	}))

	agg := hydrated(t, store, "u1")
	items := agg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, 20.0, items[0].Subtotal)
}
