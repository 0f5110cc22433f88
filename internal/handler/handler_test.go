package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRun(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Run(rec, req)
	return rec
}

func TestHandlerRun(t *testing.T) {
	h := New(Config{})

	body := `{
		"cart": {"lines": [{
			"id": "gid://shopify/CartLine/1",
			"quantity": 2,
			"merchandise": {
				"__typename": "ProductVariant",
				"id": "gid://shopify/ProductVariant/11",
				"product": {"id": "gid://shopify/Product/7"}
			}
		}]},
		"discountNode": {"metafield": {"value": "[{\"minQty\":2,\"percentOff\":25}]"}}
	}`

	rec := postRun(t, h, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	want := `{"discountApplicationStrategy":"All","discounts":[` +
		`{"message":"Buy 2 get 25% off",` +
		`"targets":[{"productVariant":{"id":"gid://shopify/ProductVariant/11"}}],` +
		`"value":{"percentage":{"value":"25"}}}]}`
	assert.Equal(t, want, rec.Body.String())
}

func TestHandlerRunMalformedBody(t *testing.T) {
	h := New(Config{})

	// Bad input degrades to the fallback result, never an error status.
	rec := postRun(t, h, `{broken`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"percentage":{"value":"0"}`)
	require.True(t, json.Valid(rec.Body.Bytes()))
}

func TestHandlerRunMethodNotAllowed(t *testing.T) {
	h := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rec := httptest.NewRecorder()
	h.Run(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandlerRunBodyTooLarge(t *testing.T) {
	h := New(Config{MaxBodyBytes: 64})

	rec := postRun(t, h, strings.Repeat("x", 65))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandlerRunParallel(t *testing.T) {
	sequential := New(Config{})
	parallel := New(Config{Parallel: 4})

	body := `{
		"cart": {"lines": [
			{"id": "gid://shopify/CartLine/1", "quantity": 6, "merchandise": {
				"__typename": "ProductVariant",
				"id": "gid://shopify/ProductVariant/1",
				"product": {"id": "gid://shopify/Product/1"}
			}},
			{"id": "gid://shopify/CartLine/2", "quantity": 3, "merchandise": {
				"__typename": "ProductVariant",
				"id": "gid://shopify/ProductVariant/2",
				"product": {"id": "gid://shopify/Product/2"}
			}}
		]},
		"discountNode": {"metafield": {"value": "[{\"minQty\":2,\"freeQty\":1}]"}}
	}`

	want := postRun(t, sequential, body)
	got := postRun(t, parallel, body)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, want.Body.String(), got.Body.String())
}
