package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vitrina/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), globals.UserIDKey, "u1")
	return r.WithContext(ctx)
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) cartView {
	t.Helper()
	var v cartView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestCartHandlersFlow(t *testing.T) {
	prev := DefaultStore
	DefaultStore = NewMemStore()
	t.Cleanup(func() { DefaultStore = prev })

	// Add the same product twice, then a second product.
	payload := `{"productId":"P1","productName":"Gadget","productCode":"G-1","price":100}`
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		AddToCart(rec, authedRequest(http.MethodPost, "/api/cart/items", payload), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := httptest.NewRecorder()
	AddToCart(rec, authedRequest(http.MethodPost, "/api/cart/items",
		`{"productId":"P2","productName":"Widget","productCode":"W-1","price":50}`), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	GetCart(rec, authedRequest(http.MethodGet, "/api/cart", ""), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	require.Len(t, v.Items, 2)
	assert.Equal(t, 3, v.TotalItems)
	assert.Equal(t, 250.0, v.Subtotal)

	// Update quantity to zero removes the row.
	rec = httptest.NewRecorder()
	UpdateCartItem(rec, authedRequest(http.MethodPut, "/api/cart/items/P1", `{"quantity":0}`),
		httprouter.Params{{Key: "productid", Value: "P1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "P2", v.Items[0].ProductID)

	// Removing an absent id still succeeds.
	rec = httptest.NewRecorder()
	RemoveCartItem(rec, authedRequest(http.MethodDelete, "/api/cart/items/missing", ""),
		httprouter.Params{{Key: "productid", Value: "missing"}})
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Len(t, v.Items, 1)

	rec = httptest.NewRecorder()
	ClearCart(rec, authedRequest(http.MethodDelete, "/api/cart", ""), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Empty(t, v.Items)
	assert.Equal(t, 0, v.TotalItems)
}

func TestAddToCartValidation(t *testing.T) {
	prev := DefaultStore
	DefaultStore = NewMemStore()
	t.Cleanup(func() { DefaultStore = prev })

	cases := []string{
		`{bad json`,
		`{"productName":"x","price":10}`,
		`{"productId":"P1","productName":"x","price":0}`,
		`{"productId":"P1","price":10}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		AddToCart(rec, authedRequest(http.MethodPost, "/api/cart/items", body), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestCartHandlersRequireAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	GetCart(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
