package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"ordermgr/internal/app"
	"ordermgr/internal/config"
	"ordermgr/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds the full application on a fresh in-memory SQLite store.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Open(config.Config{DBDriver: config.DriverSQLite, DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	now := func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }
	return app.New(db, app.Options{Now: now, DisableRequestLog: true})
}

// doJSON sends body as JSON (or no body when nil) and decodes the response.
func doJSON(t *testing.T, a *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, a, req)
}

// doList sends a GET and decodes a JSON array response.
func doList(t *testing.T, a *fiber.App, path string) []map[string]any {
	t.Helper()
	resp, err := a.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func send(t *testing.T, a *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func idOf(t *testing.T, m map[string]any) float64 {
	t.Helper()
	id, ok := m["id"].(float64)
	require.True(t, ok, "response has no id: %v", m)
	return id
}

func TestRootRedirectsToProducts(t *testing.T) {
	a := setupApp(t)

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
}

func TestHealth(t *testing.T) {
	a := setupApp(t)

	status, body := doJSON(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])
	assert.Equal(t, false, body["events"])
}

func TestOrderFlow(t *testing.T) {
	a := setupApp(t)

	status, category := doJSON(t, a, http.MethodPost, "/categories/create", map[string]any{"name": "Beverages"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := idOf(t, category)

	status, soda := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{
		"name": "Soda", "price": "2.50", "category_id": categoryID,
	})
	require.Equal(t, http.StatusCreated, status)
	sodaID := idOf(t, soda)

	products := doList(t, a, "/products")
	require.Len(t, products, 1)
	assert.Equal(t, "Beverages", products[0]["category_name"])

	status, customer := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{
		"name": "Ann", "email": "ann@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	customerID := idOf(t, customer)

	status, order := doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": customerID})
	require.Equal(t, http.StatusCreated, status)
	orderID := idOf(t, order)
	assert.Equal(t, false, order["concluded"])
	assert.Equal(t, "2024-03-15T09:30:00Z", order["order_date"])

	itemsPath := "/order_items/" + formatID(orderID)
	status, _ = doJSON(t, a, http.MethodPost, itemsPath+"/create", map[string]any{"product_id": sodaID, "quantity": 4})
	require.Equal(t, http.StatusCreated, status)

	status, detail := doJSON(t, a, http.MethodGet, itemsPath+"/list", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10", detail["total"])
	items := detail["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, "Soda", line["product_name"])
	assert.Equal(t, "10", line["line_total"])

	orders := doList(t, a, "/orders")
	require.Len(t, orders, 1)
	assert.Equal(t, "Ann", orders[0]["customer_name"])
	assert.Equal(t, "10", orders[0]["total"])

	orderPath := "/orders/" + formatID(orderID)
	status, concluded := doJSON(t, a, http.MethodPost, orderPath+"/conclude", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, concluded["concluded"])

	status, body := doJSON(t, a, http.MethodPost, itemsPath+"/create", map[string]any{"product_id": sodaID, "quantity": 1})
	assert.Equal(t, http.StatusLocked, status)
	assert.Contains(t, body["error"], "order is concluded")

	status, _ = doJSON(t, a, http.MethodPost, orderPath+"/delete", nil)
	assert.Equal(t, http.StatusLocked, status)

	status, _ = doJSON(t, a, http.MethodPost, orderPath+"/conclude", nil)
	assert.Equal(t, http.StatusOK, status, "concluding twice is allowed")

	status, detail = doJSON(t, a, http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10", detail["total"])
}

func TestDeleteOpenOrderRemovesItems(t *testing.T) {
	a := setupApp(t)

	_, customer := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{"name": "Bo", "email": "bo@example.com"})
	_, tea := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Tea", "price": 3})
	_, order := doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": idOf(t, customer)})
	orderID := formatID(idOf(t, order))

	status, item := doJSON(t, a, http.MethodPost, "/order_items/"+orderID+"/create", map[string]any{"product_id": idOf(t, tea), "quantity": 2})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, a, http.MethodPost, "/orders/"+orderID+"/delete", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Order "+orderID+" deleted successfully", body["message"])

	status, _ = doJSON(t, a, http.MethodGet, "/order_items/"+formatID(idOf(t, item))+"/edit", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, doList(t, a, "/orders"))
}

func TestEditOrderItem(t *testing.T) {
	a := setupApp(t)

	_, customer := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{"name": "Cy", "email": "cy@example.com"})
	_, pen := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Pen", "price": "1.25"})
	_, order := doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": idOf(t, customer)})
	orderID := formatID(idOf(t, order))
	_, item := doJSON(t, a, http.MethodPost, "/order_items/"+orderID+"/create", map[string]any{"product_id": idOf(t, pen), "quantity": 1})
	itemPath := "/order_items/" + formatID(idOf(t, item))

	status, edited := doJSON(t, a, http.MethodPost, itemPath+"/edit", map[string]any{"product_id": idOf(t, pen), "quantity": 3})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, edited["quantity"])

	status, _ = doJSON(t, a, http.MethodPost, itemPath+"/edit", map[string]any{"product_id": idOf(t, pen), "quantity": 0})
	assert.Equal(t, http.StatusConflict, status)

	_, detail := doJSON(t, a, http.MethodGet, "/orders/"+orderID, nil)
	assert.Equal(t, "3.75", detail["total"])

	status, body := doJSON(t, a, http.MethodPost, itemPath+"/delete", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, idOf(t, order), body["order_id"])
}

func TestDuplicateEmailConflict(t *testing.T) {
	a := setupApp(t)

	status, _ := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{"name": "A", "email": "a@x.com"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{"name": "B", "email": "a@x.com"})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, body["message"])

	customers := doList(t, a, "/customers")
	require.Len(t, customers, 1)
	assert.Equal(t, "A", customers[0]["name"])
}

func TestFormEncodedCreate(t *testing.T) {
	a := setupApp(t)

	form := url.Values{"name": {"Dee"}, "email": {"dee@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/customers/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	status, customer := send(t, a, req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "dee@example.com", customer["email"])

	form = url.Values{"name": {"Chalk"}, "price": {"0.40"}}
	req = httptest.NewRequest(http.MethodPost, "/products/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	status, product := send(t, a, req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "0.4", product["price"])
	assert.Nil(t, product["category_id"])
}

func TestInvalidRequests(t *testing.T) {
	a := setupApp(t)

	status, _ := doJSON(t, a, http.MethodGet, "/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, a, http.MethodGet, "/orders/99", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": 99})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, a, http.MethodPost, "/categories/create", map[string]any{"name": ""})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Gum", "price": 1, "category_id": 42})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteCategoryKeepsProducts(t *testing.T) {
	a := setupApp(t)

	_, category := doJSON(t, a, http.MethodPost, "/categories/create", map[string]any{"name": "Snacks"})
	_, _ = doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Chips", "price": "1.99", "category_id": idOf(t, category)})

	status, _ := doJSON(t, a, http.MethodDelete, "/categories/"+formatID(idOf(t, category)), nil)
	require.Equal(t, http.StatusOK, status)

	products := doList(t, a, "/products")
	require.Len(t, products, 1)
	assert.Nil(t, products[0]["category_name"])
	assert.Nil(t, products[0]["category_id"])
}

func formatID(id float64) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestCreateProductRequiresPrice(t *testing.T) {
	a := setupApp(t)

	form := url.Values{"name": {"Soda"}}
	req := httptest.NewRequest(http.MethodPost, "/products/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	status, body := send(t, a, req)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "price is required")

	status, _ = doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Soda"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Soda", "price": nil})
	assert.Equal(t, http.StatusConflict, status)

	assert.Empty(t, doList(t, a, "/products"))

	status, free := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Sample", "price": 0})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "0", free["price"])

	status, _ = doJSON(t, a, http.MethodPost, "/products/"+formatID(idOf(t, free))+"/edit", map[string]any{"name": "Sample"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestProductPriceIsRounded(t *testing.T) {
	a := setupApp(t)

	status, product := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Gum", "price": "1.005"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "1.01", product["price"])

	products := doList(t, a, "/products")
	require.Len(t, products, 1)
	assert.Equal(t, "1.01", products[0]["price"])
}

func TestListAllOrderItems(t *testing.T) {
	a := setupApp(t)

	_, customer := doJSON(t, a, http.MethodPost, "/customers/create", map[string]any{"name": "Ed", "email": "ed@example.com"})
	_, pen := doJSON(t, a, http.MethodPost, "/products/create", map[string]any{"name": "Pen", "price": "1.50"})
	_, first := doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": idOf(t, customer)})
	_, second := doJSON(t, a, http.MethodPost, "/orders/create", map[string]any{"customer_id": idOf(t, customer)})
	for _, order := range []map[string]any{first, second} {
		status, _ := doJSON(t, a, http.MethodPost, "/order_items/"+formatID(idOf(t, order))+"/create", map[string]any{"product_id": idOf(t, pen), "quantity": 2})
		require.Equal(t, http.StatusCreated, status)
	}

	lines := doList(t, a, "/order_items")
	require.Len(t, lines, 2)
	assert.Equal(t, "Pen", lines[0]["product_name"])
	assert.Equal(t, "3", lines[0]["line_total"])
	assert.EqualValues(t, idOf(t, second), lines[1]["order_id"])

	status, detail := doJSON(t, a, http.MethodPost, "/order_items/"+formatID(idOf(t, first))+"/list", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "3", detail["total"])
	assert.Len(t, detail["items"], 1)
}
