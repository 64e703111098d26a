package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/storage"
)

func setupCartRouter(t *testing.T) (*gin.Engine, *cart.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	carts := cart.NewManager(storage.NewMemoryBackend(), logger)

	h := NewCartHandler(carts)
	r := gin.New()
	tenant := r.Group("/t/:tenant")
	tenant.Use(middleware.Tenant())
	tenant.GET("/cart", h.GetCart)
	tenant.POST("/cart/items", h.AddItem)
	tenant.PUT("/cart/items/:productId", h.UpdateItem)
	tenant.DELETE("/cart/items/:productId", h.RemoveItem)
	tenant.DELETE("/cart", h.ClearCart)
	tenant.POST("/cart/close", h.CloseCart)

	return r, carts
}

type cartResponse struct {
	Data cart.Snapshot `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response body unparsable: %v\n%s", err, w.Body.String())
		}
	}
	return w, resp
}

func TestCartEndpointsFlow(t *testing.T) {
	r, _ := setupCartRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/t/acme/cart/items",
		`{"product_id":"p1","name":"Alpha Mug","slug":"alpha-mug","unit_price":1000,"quantity":2,"stock_ceiling":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add returned %d: %s", w.Code, w.Body.String())
	}
	if resp.Data.ItemCount != 2 || resp.Data.Subtotal != 2000 || !resp.Data.IsOpen {
		t.Fatalf("add snapshot = %+v, want count 2, subtotal 2000, open", resp.Data)
	}
	if resp.Data.Items[0].LineID == "" {
		t.Fatal("handler should assign a line id when the client omits one")
	}

	// Second add merges and clamps against the first snapshot's ceiling.
	w, resp = doJSON(t, r, http.MethodPost, "/t/acme/cart/items",
		`{"product_id":"p1","name":"Alpha Mug","slug":"alpha-mug","unit_price":9999,"quantity":9,"stock_ceiling":50}`)
	if w.Code != http.StatusOK {
		t.Fatalf("merge add returned %d", w.Code)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 5 || resp.Data.Items[0].UnitPrice != 1000 {
		t.Fatalf("merge snapshot = %+v, want one line, quantity 5, original price", resp.Data.Items)
	}

	w, resp = doJSON(t, r, http.MethodPut, "/t/acme/cart/items/p1", `{"quantity":0}`)
	if w.Code != http.StatusOK || len(resp.Data.Items) != 0 {
		t.Fatalf("update to zero: code %d items %+v, want empty cart", w.Code, resp.Data.Items)
	}

	// Removing the already-removed line stays a 200 no-op.
	w, _ = doJSON(t, r, http.MethodDelete, "/t/acme/cart/items/p1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("idempotent remove returned %d", w.Code)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/t/acme/cart/close", "")
	if w.Code != http.StatusOK || resp.Data.IsOpen {
		t.Fatalf("close: code %d open %v, want closed", w.Code, resp.Data.IsOpen)
	}
}

func TestCartEndpointsIsolateTenants(t *testing.T) {
	r, carts := setupCartRouter(t)

	doJSON(t, r, http.MethodPost, "/t/acme/cart/items",
		`{"product_id":"p1","name":"Alpha Mug","slug":"alpha-mug","unit_price":1000,"stock_ceiling":5}`)

	w, resp := doJSON(t, r, http.MethodGet, "/t/globex/cart", "")
	if w.Code != http.StatusOK || resp.Data.ItemCount != 0 {
		t.Fatalf("globex cart = %+v, want empty", resp.Data)
	}

	if got := carts.Store("acme").ItemCount(); got != 1 {
		t.Fatalf("acme cart count = %d, want 1", got)
	}
}

func TestCartEndpointsRejectBadInput(t *testing.T) {
	r, _ := setupCartRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/t/acme/cart/items", `{"quantity":2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing product fields returned %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/t/Not%20A%20Slug/cart", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid tenant slug returned %d, want 400", w.Code)
	}
}
