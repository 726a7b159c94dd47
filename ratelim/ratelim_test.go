package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestLimitAllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	var rejected int
	for i := 0; i < 15; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/product/p1", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		handler(rec, r, nil)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}

	assert.NotZero(t, rejected, "burst above the bucket size must be rejected")
}

func TestLimitTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// Exhaust one client's bucket.
	for i := 0; i < 15; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		r.RemoteAddr = "10.0.0.2:5000"
		handler(rec, r, nil)
	}

	// A fresh client is unaffected.
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.RemoteAddr = "10.0.0.3:5000"
	handler(rec, r, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
