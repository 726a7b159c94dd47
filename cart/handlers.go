package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vitrina/models"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
)

// DefaultStore backs the HTTP handlers. Tests swap it for a MemStore.
var DefaultStore Store = NewRedisStore()

type cartView struct {
	Items      []models.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Subtotal   float64           `json:"subtotal"`
	Warning    string            `json:"warning,omitempty"`
}

func view(a *Aggregator, persistErr error) cartView {
	v := cartView{
		Items:      a.Items(),
		TotalItems: a.TotalItems(),
		Subtotal:   a.Subtotal(),
	}
	if errors.Is(persistErr, ErrNotPersisted) {
		v.Warning = "cart changes were applied but could not be saved"
	}
	return v
}

// aggregatorFor hydrates a per-request aggregator for the logged-in user.
func aggregatorFor(ctx context.Context, r *http.Request) (*Aggregator, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, false
	}
	agg := NewAggregator(DefaultStore, userID)
	agg.Hydrate(ctx)
	return agg, true
}

// GetCart returns the user's cart with derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view(agg, nil))
}

// GetCartSummary returns just the derived totals, for the cart badge.
func GetCartSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"totalItems": agg.TotalItems(),
		"subtotal":   agg.Subtotal(),
	})
}

// AddToCart adds one unit of the posted product, merging by product id.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var candidate Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if candidate.ProductID == "" || candidate.ProductName == "" || candidate.Price <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := agg.AddItem(ctx, candidate)
	utils.RespondWithJSON(w, http.StatusCreated, view(agg, err))
}

// UpdateCartItem sets the quantity for one product. Quantity zero or
// below removes the row.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Quantity == nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := agg.UpdateQuantity(ctx, ps.ByName("productid"), *payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, view(agg, err))
}

// RemoveCartItem deletes one product from the cart; absent ids are a no-op.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := agg.RemoveItem(ctx, ps.ByName("productid"))
	utils.RespondWithJSON(w, http.StatusOK, view(agg, err))
}

// ClearCart empties the cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agg, ok := aggregatorFor(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := agg.ClearCart(ctx)
	utils.RespondWithJSON(w, http.StatusOK, view(agg, err))
}
