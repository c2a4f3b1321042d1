// Package demo is a small order catalog used by the serve command to exercise the engine
// end to end: embedded base types, nested objects, scoped state and call-site wrappers.
package demo

import (
	"context"
	"slices"
	"time"
)

// Entity is embedded by every persisted demo type.
type Entity struct {
	ID      int
	Created time.Time
}

type Category struct {
	Entity
	Title string
	Slug  string
}

type Product struct {
	Entity
	Name       string
	PriceCents int
	CostCents  int
	Tags       []string
	Category   *Category
}

type Customer struct {
	Entity
	Name  string
	Email string
}

type Line struct {
	Product  *Product
	Quantity int
}

type Order struct {
	Entity
	Customer *Customer
	Lines    []Line
	Status   string
}

// TotalCents sums the order lines.
func (o *Order) TotalCents() int {
	var total int
	for _, l := range o.Lines {
		total += l.Quantity * l.Product.PriceCents
	}
	return total
}

// Catalog is a read-only in-memory data set.
type Catalog struct {
	products []*Product
	orders   []*Order
}

// NewCatalog returns the seeded catalog.
func NewCatalog() *Catalog {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	lighting := &Category{Entity: Entity{ID: 1, Created: created}, Title: "Lighting", Slug: "lighting"}
	office := &Category{Entity: Entity{ID: 2, Created: created}, Title: "Office", Slug: "office"}

	lamp := &Product{Entity: Entity{ID: 10, Created: created}, Name: "Desk lamp", PriceCents: 3990, CostCents: 2100, Tags: []string{"led"}, Category: lighting}
	chair := &Product{Entity: Entity{ID: 11, Created: created}, Name: "Chair", PriceCents: 12900, CostCents: 8000, Category: office}
	pen := &Product{Entity: Entity{ID: 12, Created: created}, Name: "Pen", PriceCents: 150, CostCents: 40, Tags: []string{"bulk", "blue"}}

	ada := &Customer{Entity: Entity{ID: 100, Created: created}, Name: "Ada", Email: "ada@example.com"}
	grace := &Customer{Entity: Entity{ID: 101, Created: created}, Name: "Grace", Email: "grace@example.com"}

	return &Catalog{
		products: []*Product{lamp, chair, pen},
		orders: []*Order{
			{Entity: Entity{ID: 1000, Created: created}, Customer: ada, Status: "paid", Lines: []Line{{Product: lamp, Quantity: 2}, {Product: pen, Quantity: 10}}},
			{Entity: Entity{ID: 1001, Created: created}, Customer: grace, Status: "open", Lines: []Line{{Product: chair, Quantity: 1}}},
		},
	}
}

// Products returns every product.
func (c *Catalog) Products() []*Product { return slices.Clone(c.products) }

// Product finds a product by id.
func (c *Catalog) Product(id int) (*Product, bool) {
	i := slices.IndexFunc(c.products, func(p *Product) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return c.products[i], true
}

// Orders returns every order.
func (c *Catalog) Orders() []*Order { return slices.Clone(c.orders) }

// Order finds an order by id.
func (c *Catalog) Order(id int) (*Order, bool) {
	i := slices.IndexFunc(c.orders, func(o *Order) bool { return o.ID == id })
	if i < 0 {
		return nil, false
	}
	return c.orders[i], true
}

// StateWriter stores state entries read back through a ports.StateSource.
type StateWriter interface {
	Save(ctx context.Context, key string, values map[string]any) error
}

// Seed writes the demo tenant and customer state.
func Seed(ctx context.Context, w StateWriter) error {
	if err := w.Save(ctx, TenantKey, map[string]any{StateCurrency: "EUR"}); err != nil {
		return err
	}
	return w.Save(ctx, CustomerKey(100), map[string]any{StateTier: "gold"})
}
