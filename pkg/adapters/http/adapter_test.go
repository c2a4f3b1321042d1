package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID    int
	Name  string
	Price float64
}

func newTestRouter(t *testing.T, opts ...AdapterOption) http.Handler {
	t.Helper()
	cfg := config.New()
	config.Configure(cfg, func(c *domain.TypeConfig[product]) {
		c.AddField("ID").As("id")
		c.AddField("Name").As("name")
		c.ConfigureAdd("price", func(p product, s domain.ReadOnlyState) (any, error) {
			if s.Value("admin") != true {
				return domain.Ignore, nil
			}
			return p.Price, nil
		})
	})
	require.NoError(t, cfg.Build())
	eng, err := augmenter.New(cfg)
	require.NoError(t, err)

	adapter := NewAdapter(eng, opts...)
	page := template.Must(template.New("page").Parse(`<p>{{.Name}}</p>`))
	item := product{ID: 1, Name: "lamp", Price: 9.5}

	return NewRouter("1.2.3\n", func(r chi.Router) {
		r.Get("/object", adapter.Handle(func(*http.Request) (Result, error) {
			return Object{Value: item}, nil
		}))
		r.Get("/json", adapter.Handle(func(*http.Request) (Result, error) {
			return JSON{Value: []product{item}, Status: http.StatusAccepted, Header: http.Header{"X-Total": {"1"}}}, nil
		}))
		r.Get("/view", adapter.Handle(func(*http.Request) (Result, error) {
			return View{Template: page, Data: item}, nil
		}))
		r.Get("/missing", adapter.Handle(func(*http.Request) (Result, error) {
			return nil, NewStatusError(http.StatusNotFound, "no such product")
		}))
		r.Get("/broken", adapter.Handle(func(*http.Request) (Result, error) {
			return nil, errors.New("database exploded")
		}))
		r.Get("/empty", adapter.Handle(func(*http.Request) (Result, error) {
			return nil, nil
		}))
	})
}

func do(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAdapter_ObjectIsShaped(t *testing.T) {
	w := do(t, newTestRouter(t), "/object")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":1,"name":"lamp"}`+"\n", w.Body.String())
}

func TestAdapter_JSONWithRequestState(t *testing.T) {
	router := newTestRouter(t, WithRequestState(func(r *http.Request, s domain.State) error {
		s["admin"] = r.Header.Get("X-Admin") == "true"
		return nil
	}))

	w := do(t, router, "/json", "X-Admin", "true")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total"))
	assert.JSONEq(t, `[{"id":1,"name":"lamp","price":9.5}]`, w.Body.String())

	w = do(t, router, "/json")
	assert.JSONEq(t, `[{"id":1,"name":"lamp"}]`, w.Body.String())
}

func TestAdapter_ViewPassesThrough(t *testing.T) {
	w := do(t, newTestRouter(t), "/view")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>lamp</p>", w.Body.String())
}

func TestAdapter_Errors(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no such product"}`, w.Body.String())

	w = do(t, router, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String(), "internal details are not leaked")

	w = do(t, router, "/empty")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAdapter_StateErrorFailsRequest(t *testing.T) {
	router := newTestRouter(t, WithRequestState(func(*http.Request, domain.State) error {
		return context.DeadlineExceeded
	}))
	w := do(t, router, "/object")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_Health(t *testing.T) {
	w := do(t, newTestRouter(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}
