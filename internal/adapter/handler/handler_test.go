package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfandrade/storefront/internal/adapter/storage"
	"github.com/rfandrade/storefront/internal/adapter/token"
	"github.com/rfandrade/storefront/internal/core/service"
)

// setupAPI wires the real services over an in-memory database, so these
// tests exercise the full request path minus redis (the cache is optional).
func setupAPI(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens := token.NewJWTManager("test-secret", time.Hour)
	h := NewHTTPHandler(
		service.NewAuthService(store, tokens),
		service.NewProductService(store, nil),
		service.NewOrderService(store),
		service.NewAdminService(store),
		tokens,
		store,
	)

	ts := httptest.NewServer(NewRouter(h, nil))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var payload *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, method, url, bearer string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var decoded map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		t.Logf("non-200 body: %v", decoded)
		return resp.StatusCode, nil
	}

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func register(t *testing.T, ts *httptest.Server, name, email string, isAdmin bool) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "password123",
		"isAdmin":  isAdmin,
	})
	require.Equal(t, http.StatusCreated, status, "register body: %v", body)
	return body["token"].(string)
}

func createProduct(t *testing.T, ts *httptest.Server, adminToken, name, price string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/products", adminToken, map[string]any{
		"name":  name,
		"price": price,
		"stock": 25,
	})
	require.Equal(t, http.StatusCreated, status, "create product body: %v", body)
	return body["product"].(map[string]any)["id"].(string)
}

func TestHealth(t *testing.T) {
	ts := setupAPI(t)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	ts := setupAPI(t)

	tok := register(t, ts, "Ada", "ada@example.com", false)

	// Duplicate email is rejected.
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]any{
		"name": "Dup", "email": "ada@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Login round-trip.
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// /me requires and honors the token.
	status, body = doJSON(t, http.MethodGet, ts.URL+"/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProductEndpoints(t *testing.T) {
	ts := setupAPI(t)
	adminToken := register(t, ts, "Admin", "admin@example.com", true)
	userToken := register(t, ts, "Ada", "ada@example.com", false)

	// Only admins may write.
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products", userToken, map[string]any{
		"name": "Nope", "price": "1.00",
	})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/products", "", map[string]any{
		"name": "Nope", "price": "1.00",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	id := createProduct(t, ts, adminToken, "Keyboard", "89.99")

	// Public reads.
	status, list := doJSONList(t, http.MethodGet, ts.URL+"/api/products", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Keyboard", list[0]["name"])
	assert.Equal(t, "89.99", list[0]["price"])

	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Keyboard", body["name"])

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Partial update keeps untouched fields.
	status, body = doJSON(t, http.MethodPut, ts.URL+"/api/products/"+id, adminToken, map[string]any{
		"price": "79.99",
	})
	require.Equal(t, http.StatusOK, status)
	product := body["product"].(map[string]any)
	assert.Equal(t, "79.99", product["price"])
	assert.Equal(t, "Keyboard", product["name"])

	// Delete.
	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/products/"+id, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/products/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrderEndpoints(t *testing.T) {
	ts := setupAPI(t)
	adminToken := register(t, ts, "Admin", "admin@example.com", true)
	userToken := register(t, ts, "Ada", "ada@example.com", false)

	productID := createProduct(t, ts, adminToken, "Keyboard", "19.99")

	// Placement requires auth.
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/orders", "", map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Empty cart and unknown products are rejected before any write.
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/orders", userToken, map[string]any{
		"items": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/orders", userToken, map[string]any{
		"items": []map[string]any{{"productId": "9999", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Successful placement returns the exact decimal total.
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/orders", userToken, map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, status, "place order body: %v", body)
	assert.Equal(t, "59.97", body["totalAmount"])
	orderID := body["orderId"].(string)
	require.NotEmpty(t, orderID)

	// Nothing was written by the failed attempts.
	status, list := doJSONList(t, http.MethodGet, ts.URL+"/api/orders/my", userToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "PENDING", list[0]["status"])
	items := list[0]["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "19.99", item["price"])
	assert.Equal(t, "Keyboard", item["product"].(map[string]any)["name"])

	// All-orders listing is admin only and includes the owning user.
	status, _ = doJSONList(t, http.MethodGet, ts.URL+"/api/orders", userToken)
	assert.Equal(t, http.StatusForbidden, status)
	status, all := doJSONList(t, http.MethodGet, ts.URL+"/api/orders", adminToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, all, 1)
	assert.Equal(t, "ada@example.com", all[0]["user"].(map[string]any)["email"])

	// Status transitions.
	statusURL := fmt.Sprintf("%s/api/orders/%s/status", ts.URL, orderID)
	status, _ = doJSON(t, http.MethodPatch, statusURL, userToken, map[string]any{"status": "PAID"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, http.MethodPatch, statusURL, adminToken, map[string]any{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, http.MethodPatch, ts.URL+"/api/orders/missing/status", adminToken, map[string]any{"status": "PAID"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, http.MethodPatch, statusURL, adminToken, map[string]any{"status": "DELIVERED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DELIVERED", body["order"].(map[string]any)["status"])

	// Re-applying the same status succeeds unchanged.
	status, body = doJSON(t, http.MethodPatch, statusURL, adminToken, map[string]any{"status": "DELIVERED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DELIVERED", body["order"].(map[string]any)["status"])
}

func TestDashboard(t *testing.T) {
	ts := setupAPI(t)
	adminToken := register(t, ts, "Admin", "admin@example.com", true)
	userToken := register(t, ts, "Ada", "ada@example.com", false)

	productID := createProduct(t, ts, adminToken, "Lamp", "24.99")
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/orders", userToken, map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodGet, ts.URL+"/api/admin/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["totalUsers"])
	assert.Equal(t, float64(1), body["totalProducts"])
	assert.Equal(t, float64(1), body["totalOrders"])
	assert.Equal(t, "49.98", body["totalRevenue"])

	byStatus := body["ordersByStatus"].([]any)
	require.Len(t, byStatus, 1)
	row := byStatus[0].(map[string]any)
	assert.Equal(t, "PENDING", row["status"])
	assert.Equal(t, float64(1), row["count"])
}
