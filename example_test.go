package augmenter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
)

type Category struct {
	Title string
}

type Product struct {
	ID       int
	Name     string
	Category *Category
	Cost     float64
}

// ExampleEngine_Augment shapes a product with a nested category and state-dependent fields.
func ExampleEngine_Augment() {
	cfg := config.New()
	config.Configure(cfg, func(c *domain.TypeConfig[Product]) {
		c.AddField("ID")
		c.AddField("Name")
		c.AddNestedField("Category", nil, func(_ context.Context, parent any, _ domain.ReadOnlyState, add domain.State) error {
			add["product"] = parent.(*Product).Name
			return nil
		})
		c.ConfigureAdd("Cost", func(p Product, s domain.ReadOnlyState) (any, error) {
			if s.Value("admin") != true {
				return domain.Ignore, nil
			}
			return p.Cost, nil
		})
	})
	config.Configure(cfg, func(c *domain.TypeConfig[Category]) {
		c.AddField("Title")
		c.ConfigureAdd("Of", func(_ Category, s domain.ReadOnlyState) (any, error) {
			return s.Value("product"), nil
		})
	})
	if err := cfg.Build(); err != nil {
		log.Fatal(err)
	}

	eng, err := augmenter.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	product := &Product{ID: 7, Name: "Lamp", Category: &Category{Title: "Home"}, Cost: 12.5}
	ctx := context.Background()

	public, _ := eng.Augment(ctx, product)
	admin, _ := eng.Augment(ctx, product, augmenter.WithState(func(_ context.Context, s domain.State) error {
		s["admin"] = true
		return nil
	}))

	for _, out := range []any{public, admin} {
		data, _ := json.Marshal(out)
		fmt.Println(string(data))
	}
	// Output:
	// {"ID":7,"Name":"Lamp","Category":{"Title":"Home","Of":"Lamp"}}
	// {"ID":7,"Name":"Lamp","Category":{"Title":"Home","Of":"Lamp"},"Cost":12.5}
}

// ExampleConfigure shapes a type nobody declared, for one call only.
func ExampleConfigure() {
	cfg := config.New()
	if err := cfg.Build(); err != nil {
		log.Fatal(err)
	}
	eng, _ := augmenter.New(cfg)

	type point struct{ X, Y int }
	out, _ := eng.Augment(context.Background(), []point{{1, 2}, {3, 4}},
		augmenter.Configure(func(c *domain.TypeConfig[point]) {
			c.AddField("X").As("x")
			c.ConfigureAdd("sum", func(p point, _ domain.ReadOnlyState) (any, error) { return p.X + p.Y, nil })
		}),
	)

	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output:
	// [{"x":1,"sum":3},{"x":3,"sum":7}]
}
