package demo

import (
	"context"
	"html/template"
	stdhttp "net/http"
	"strconv"

	"github.com/aretw0/augmenter/pkg/adapters/http"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/go-chi/chi/v5"
)

var productPage = template.Must(template.New("product").Parse(
	`<!doctype html><title>{{.Name}}</title><h1>{{.Name}}</h1><p>{{.Category.Title}}</p>`))

// RequestState derives call state from the request: ?currency= and the X-Admin header.
func RequestState(r *stdhttp.Request, s domain.State) error {
	if c := r.URL.Query().Get("currency"); c != "" {
		s[StateCurrency] = c
	}
	s[StateAdmin] = r.Header.Get("X-Admin") == "true"
	return nil
}

// Mount registers the catalog routes on r, shaping results through a.
func Mount(r chi.Router, a *http.Adapter, c *Catalog) {
	r.Get("/products", a.Handle(func(*stdhttp.Request) (http.Result, error) {
		products := c.Products()
		return http.JSON{
			Value:  products,
			Header: stdhttp.Header{"X-Total-Count": {strconv.Itoa(len(products))}},
		}, nil
	}))

	r.Get("/products/{id}", a.Handle(func(req *stdhttp.Request) (http.Result, error) {
		p, err := lookup(req, c.Product)
		if err != nil {
			return nil, err
		}
		return http.Object{Value: p}, nil
	}))

	r.Get("/products/{id}/page", a.Handle(func(req *stdhttp.Request) (http.Result, error) {
		p, err := lookup(req, c.Product)
		if err != nil {
			return nil, err
		}
		return http.View{Template: productPage, Data: p}, nil
	}))

	r.Get("/orders", a.Handle(func(*stdhttp.Request) (http.Result, error) {
		return http.JSON{Value: c.Orders(), Indent: true}, nil
	}))

	r.Get("/orders/{id}", a.Handle(func(req *stdhttp.Request) (http.Result, error) {
		o, err := lookup(req, c.Order)
		if err != nil {
			return nil, err
		}
		return http.Object{Value: o}, nil
	}))

	// A receipt is an order shaped with a one-off configuration.
	r.Get("/orders/{id}/receipt", a.Handle(func(req *stdhttp.Request) (http.Result, error) {
		o, err := lookup(req, c.Order)
		if err != nil {
			return nil, err
		}
		receipt := domain.Wrap(o, func(c *domain.TypeConfig[Order]) {
			c.ConfigureRemove("lines", nil)
			c.ConfigureRemove("customer", nil)
			c.ConfigureAdd("issued_to", func(o Order, s domain.ReadOnlyState) (any, error) {
				return o.Customer.Name, nil
			})
			c.ConfigureAdd("items", func(o Order, s domain.ReadOnlyState) (any, error) {
				return len(o.Lines), nil
			})
		}).WithState(func(_ context.Context, _ any, s domain.State) error {
			// Receipts never expose admin-only data.
			s[StateAdmin] = false
			return nil
		})
		return http.Object{Value: receipt}, nil
	}))
}

func lookup[T any](req *stdhttp.Request, find func(int) (T, bool)) (T, error) {
	var zero T
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		return zero, http.NewStatusError(stdhttp.StatusBadRequest, "invalid id")
	}
	v, ok := find(id)
	if !ok {
		return zero, http.NewStatusError(stdhttp.StatusNotFound, "not found")
	}
	return v, nil
}
