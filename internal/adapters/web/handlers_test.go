package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"biztrack/internal/adapters/web"
	"biztrack/internal/auth"
	"biztrack/internal/core"
	"biztrack/internal/report"
)

type testServer struct {
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := core.NewStore(core.NewMemoryPersister())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	users := core.NewUsers(store)
	if err := users.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	metrics := core.NewMetrics(store)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	router := web.NewRouter(web.Services{
		Ledger:   core.NewLedger(store),
		Catalog:  core.NewCatalog(store),
		Expenses: core.NewExpenses(store),
		Contacts: core.NewContacts(store),
		Settings: core.NewSettings(store),
		Metrics:  metrics,
		Users:    users,
		Export:   report.NewExportService(store, metrics),
		Tokens:   tokens,
	}, nil)

	ts := &testServer{router: router}
	ts.token = ts.login(t, "admin", "admin123")
	return ts
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	ts.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.token)
	ts.router.ServeHTTP(w, req)
	return w
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return v
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	body := `{"username":"admin","password":"wrong"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	ts.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	ts := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	ts.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestProducts_CRUD(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":         "Desk Lamp",
		"sku":          "GEN-001",
		"buyingPrice":  20,
		"sellingPrice": 50,
		"stock":        10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	product := decodeBody[core.Product](t, w)
	if product.ID == "" {
		t.Fatal("expected product id to be set")
	}

	w = ts.do(t, http.MethodGet, "/api/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products: expected 200, got %d", w.Code)
	}
	products := decodeBody[[]core.Product](t, w)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	newStock := 25
	w = ts.do(t, http.MethodPut, "/api/products/"+product.ID, map[string]any{"stock": newStock})
	if w.Code != http.StatusOK {
		t.Fatalf("update product: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeBody[core.Product](t, w)
	if updated.Stock != newStock {
		t.Errorf("expected stock %d, got %d", newStock, updated.Stock)
	}

	w = ts.do(t, http.MethodPut, "/api/products/missing", map[string]any{"stock": 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("update unknown product: expected 404, got %d", w.Code)
	}

	w = ts.do(t, http.MethodDelete, "/api/products/"+product.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete product: expected 204, got %d", w.Code)
	}
}

func TestSales_CreateAndRefund(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":         "Phone Case",
		"sku":          "ELEC-001",
		"buyingPrice":  5,
		"sellingPrice": 15,
		"stock":        4,
	})
	product := decodeBody[core.Product](t, w)

	w = ts.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productId":      product.ID,
		"quantity":       2,
		"platform":       "Offline",
		"deliveryCharge": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create sale: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	sale := decodeBody[core.Sale](t, w)
	if sale.Status != core.SaleCompleted {
		t.Errorf("expected completed status, got %s", sale.Status)
	}

	// Stock can't cover this quantity.
	w = ts.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productId": product.ID,
		"quantity":  10,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("oversold sale: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/refund", map[string]any{
		"deliveryPaidOnRefund": false,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("refund sale: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// The unrecovered delivery charge becomes a Refund Loss expense.
	w = ts.do(t, http.MethodGet, "/api/expenses", nil)
	expenses := decodeBody[[]core.Expense](t, w)
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if expenses[0].Category != core.ExpenseRefundLoss {
		t.Errorf("expected Refund Loss category, got %s", expenses[0].Category)
	}

	w = ts.do(t, http.MethodGet, "/api/products/"+product.ID, nil)
	restocked := decodeBody[core.Product](t, w)
	if restocked.Stock != 4 {
		t.Errorf("expected stock restored to 4, got %d", restocked.Stock)
	}
}

func TestSales_UnknownProduct(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productId": "missing",
		"quantity":  1,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMetrics_Endpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":         "Notebook",
		"sku":          "GEN-002",
		"buyingPrice":  2,
		"sellingPrice": 6,
		"stock":        3,
	})
	product := decodeBody[core.Product](t, w)

	ts.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productId": product.ID,
		"quantity":  1,
		"platform":  "Offline",
	})

	w = ts.do(t, http.MethodGet, "/api/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
	metrics := decodeBody[core.DashboardMetrics](t, w)
	if !metrics.TotalSales.Equal(dec("6")) {
		t.Errorf("expected totalSales 6, got %s", metrics.TotalSales)
	}
	if !metrics.TotalProfit.Equal(dec("4")) {
		t.Errorf("expected totalProfit 4, got %s", metrics.TotalProfit)
	}
}

func TestSettings_PlatformLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/settings/platforms", map[string]any{
		"name":     "Daraz",
		"feeValue": 7.5,
		"feeType":  "PERCENTAGE",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add platform: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	platform := decodeBody[core.Platform](t, w)

	w = ts.do(t, http.MethodGet, "/api/settings", nil)
	settings := decodeBody[core.AppSettings](t, w)
	if len(settings.Platforms) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(settings.Platforms))
	}

	w = ts.do(t, http.MethodDelete, "/api/settings/platforms/"+platform.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("remove platform: expected 204, got %d", w.Code)
	}
}

func TestReports_Export(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/reports/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("expected a non-empty workbook")
	}
}

func TestAI_Unconfigured(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/ai/analysis", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
