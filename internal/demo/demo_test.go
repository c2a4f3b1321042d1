package demo_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/internal/demo"
	"github.com/aretw0/augmenter/pkg/adapters/http"
	"github.com/aretw0/augmenter/pkg/adapters/memory"
	"github.com/aretw0/augmenter/pkg/adapters/redis"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, source ports.StateSource, files ...string) stdhttp.Handler {
	t.Helper()
	cfg, err := demo.NewConfiguration(source, files...)
	require.NoError(t, err)
	eng, err := augmenter.New(cfg)
	require.NoError(t, err)

	adapter := http.NewAdapter(eng, http.WithRequestState(demo.RequestState))
	catalog := demo.NewCatalog()
	return http.NewRouter("test", func(r chi.Router) {
		demo.Mount(r, adapter, catalog)
	})
}

func memorySource(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Save(ctx, demo.TenantKey, map[string]any{demo.StateCurrency: "USD"}))
	require.NoError(t, s.Save(ctx, demo.CustomerKey(100), map[string]any{demo.StateTier: "gold"}))
	return s
}

func get(t *testing.T, h stdhttp.Handler, path string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	if admin {
		req.Header.Set("X-Admin", "true")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestProduct_KeyOrderAndNesting(t *testing.T) {
	h := newServer(t, nil)

	w := get(t, h, "/products/10", false)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t,
		`{"id":10,"created":"2024-03-01T12:00:00Z","name":"Desk lamp",`+
			`"category":{"id":1,"created":"2024-03-01T12:00:00Z","title":"Lighting","slug":"lighting","kind":"category"},`+
			`"tags":["led"],"price":"39.90 EUR"}`+"\n",
		w.Body.String())
}

func TestProduct_AdminAndCurrency(t *testing.T) {
	h := newServer(t, nil)

	out := decode(t, get(t, h, "/products/11?currency=BRL", true))
	assert.Equal(t, "129.00 BRL", out["price"])
	assert.Equal(t, "49.00 BRL", out["margin"])

	out = decode(t, get(t, h, "/products/12", false))
	assert.NotContains(t, out, "margin")
	assert.Nil(t, out["category"])
}

func TestProducts_List(t *testing.T) {
	h := newServer(t, nil)
	w := get(t, h, "/products", false)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "Pen", out[2]["name"])
}

func TestOrder_ScopedState(t *testing.T) {
	h := newServer(t, memorySource(t))

	out := decode(t, get(t, h, "/orders/1000", false))
	assert.Equal(t, "paid", out["status"])
	assert.Equal(t, "94.80 USD", out["total"])

	customer := out["customer"].(map[string]any)
	assert.Equal(t, "Ada", customer["name"])
	assert.Equal(t, "gold", customer["tier"])
	assert.NotContains(t, customer, "email")

	lines := out["lines"].([]any)
	require.Len(t, lines, 2)
	first := lines[0].(map[string]any)
	assert.Equal(t, float64(1000), first["order"])
	assert.Equal(t, "79.80 USD", first["total"])
	assert.Equal(t, "Desk lamp", first["product"].(map[string]any)["name"])
	assert.NotContains(t, out, "order", "line state does not leak to the order")

	other := decode(t, get(t, h, "/orders/1001", true))
	customer = other["customer"].(map[string]any)
	assert.Equal(t, "standard", customer["tier"], "per-customer state is not shared")
	assert.Equal(t, "grace@example.com", customer["email"])
}

func TestOrder_Receipt(t *testing.T) {
	h := newServer(t, memorySource(t))

	w := get(t, h, "/orders/1000/receipt", true)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":1000,"created":"2024-03-01T12:00:00Z","status":"paid","total":"94.80 USD","issued_to":"Ada","items":2}`,
		w.Body.String())
}

func TestOrders_Indented(t *testing.T) {
	h := newServer(t, nil)
	w := get(t, h, "/orders", false)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\n  {\n    \"id\": 1000,")
}

func TestRoutes_Errors(t *testing.T) {
	h := newServer(t, nil)

	w := get(t, h, "/products/nope", false)
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)

	w = get(t, h, "/orders/1", false)
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestProduct_Page(t *testing.T) {
	h := newServer(t, nil)
	w := get(t, h, "/products/10/page", false)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Desk lamp</h1><p>Lighting</p>")
}

func TestRedisStateSource(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	source := redis.New(mr.Addr())
	t.Cleanup(func() { _ = source.Close() })
	require.NoError(t, source.Save(context.Background(), demo.TenantKey, map[string]any{demo.StateCurrency: "GBP"}))

	h := newServer(t, source)
	out := decode(t, get(t, h, "/products/10", false))
	assert.Equal(t, "39.90 GBP", out["price"])

	mr.Close()
	w := get(t, h, "/products/10", false)
	assert.Equal(t, stdhttp.StatusInternalServerError, w.Code)
}

func TestNewConfiguration_ExtraFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  order:\n    add:\n      - {name: channel, value: web}\n"), 0o644))

	h := newServer(t, nil, path)
	out := decode(t, get(t, h, "/orders/1001", false))
	assert.Equal(t, "web", out["channel"])

	_, err := demo.NewConfiguration(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("types:\n  order:\n    fields: [Nope]\n"), 0o644))
	_, err = demo.NewConfiguration(nil, bad)
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSeed(t *testing.T) {
	s := memory.NewStore()
	require.NoError(t, demo.Seed(context.Background(), s))
	assert.Equal(t, map[string]any{demo.StateTier: "gold"}, s.Load(context.Background(), demo.CustomerKey(100)))

	h := newServer(t, s)
	out := decode(t, get(t, h, "/orders/1000", false))
	assert.Equal(t, "94.80 EUR", out["total"])
}
