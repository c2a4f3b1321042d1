package demo

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"

	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

//go:embed types.yaml
var overlay []byte

// Type names usable in configuration files.
const (
	TypeCategory = "category"
	TypeProduct  = "product"
	TypeCustomer = "customer"
	TypeOrder    = "order"
)

// State keys read by the demo configuration.
const (
	StateCurrency = "currency"
	StateAdmin    = "admin"
	StateTier     = "tier"
	StateOrderID  = "order_id"
)

// TenantKey is the state source key holding the global (tenant) state.
const TenantKey = "tenant"

// CustomerKey is the state source key holding per-customer state.
func CustomerKey(id int) string { return "customer:" + strconv.Itoa(id) }

// NewConfiguration declares the demo types, applies the embedded overlay and every extra
// file in files, and builds the result. source feeds the global and per-customer state.
func NewConfiguration(source ports.StateSource, files ...string) (*config.Configuration, error) {
	cfg := config.New()
	Declare(cfg, source)

	if err := cfg.Apply(overlay); err != nil {
		return nil, fmt.Errorf("demo overlay: %w", err)
	}
	for _, f := range files {
		if err := cfg.LoadFile(f); err != nil {
			return nil, err
		}
	}
	if err := cfg.Build(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Declare registers the demo types on cfg without building it.
func Declare(cfg *config.Configuration, source ports.StateSource) {
	config.RegisterType[Category](cfg, TypeCategory)
	config.RegisterType[Product](cfg, TypeProduct)
	config.RegisterType[Customer](cfg, TypeCustomer)
	config.RegisterType[Order](cfg, TypeOrder)

	if source != nil {
		cfg.ConfigureGlobalState(source.Global(TenantKey))
	}

	config.Configure(cfg, func(c *domain.TypeConfig[Entity]) {
		c.AddField("ID").As("id")
		c.AddField("Created").As("created")
	})

	config.Configure(cfg, func(c *domain.TypeConfig[Category]) {
		c.AddField("Title").As("title")
		c.AddField("Slug").As("slug")
	})

	config.Configure(cfg, func(c *domain.TypeConfig[Product]) {
		c.AddField("Name").As("name")
		c.AddNestedField("Category", nil, nil).As("category")
		c.ConfigureAdd("price", func(p Product, s domain.ReadOnlyState) (any, error) {
			return FormatMoney(p.PriceCents, s), nil
		})
		c.ConfigureAdd("margin", func(p Product, s domain.ReadOnlyState) (any, error) {
			if s.Value(StateAdmin) != true {
				return domain.Ignore, nil
			}
			return FormatMoney(p.PriceCents-p.CostCents, s), nil
		})
	})

	config.Configure(cfg, func(c *domain.TypeConfig[Customer]) {
		c.AddField("Name").As("name")
		c.AddField("Email").As("email")
	})

	config.Configure(cfg, func(c *domain.TypeConfig[Line]) {
		c.AddNestedField("Product", nil, nil).As("product")
		c.AddField("Quantity").As("quantity")
		c.ConfigureAdd("total", func(l Line, s domain.ReadOnlyState) (any, error) {
			return FormatMoney(l.Quantity*l.Product.PriceCents, s), nil
		})
	})

	// Lines only know their order through state scoped to the Lines subtree.
	lineExtra := domain.NewTypeConfig(func(c *domain.TypeConfig[Line]) {
		c.ConfigureAdd("order", func(_ Line, s domain.ReadOnlyState) (any, error) {
			if !s.Has(StateOrderID) {
				return domain.Ignore, nil
			}
			return s.Value(StateOrderID), nil
		})
	})

	var customerState domain.NestedStateFunc
	if source != nil {
		customerState = source.Nested(func(parent any) (string, bool) {
			o, ok := typeinfo.As[Order](parent)
			if !ok || o.Customer == nil {
				return "", false
			}
			return CustomerKey(o.Customer.ID), true
		})
	}

	config.Configure(cfg, func(c *domain.TypeConfig[Order]) {
		c.AddField("Status").As("status")
		c.AddNestedField("Customer", nil, customerState).As("customer")
		c.AddNestedField("Lines", lineExtra, func(_ context.Context, parent any, _ domain.ReadOnlyState, add domain.State) error {
			if o, ok := typeinfo.As[Order](parent); ok {
				add[StateOrderID] = o.ID
			}
			return nil
		}).As("lines")
		c.ConfigureAdd("total", func(o Order, s domain.ReadOnlyState) (any, error) {
			return FormatMoney(o.TotalCents(), s), nil
		})
	})
}

// FormatMoney renders cents in the state's currency (EUR when unset).
func FormatMoney(cents int, s domain.ReadOnlyState) string {
	currency, _ := s.Value(StateCurrency).(string)
	if currency == "" {
		currency = "EUR"
	}
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}
