/*
Package augmenter shapes Go object graphs into API-ready structures without putting
serialization concerns on the domain model.

Configuration is declared per type, once, at startup. It composes along struct
embedding (a configuration of an embedded type applies to every type embedding it),
can be extended for a single call, and reads ambient state that flows from the root
of a call down to nested objects. Each nesting level can add state for its subtree
without its parent or its siblings seeing it.

# Concept

A type configuration lists the fields copied into the output, in order, and a list of
augmentations applied afterwards:

  - Add sets a key to a computed value (returning domain.Ignore skips it).
  - Remove deletes a key, optionally only when a predicate does not return domain.Ignore.

Fields can be declared nested, in which case their value is shaped recursively with its
own configuration, optional extra configuration, and optional extra state.

# Usage

	cfg := config.New()
	config.Configure(cfg, func(c *domain.TypeConfig[Product]) {
		c.AddField("Name")
		c.AddNestedField("Category", nil, nil)
		c.ConfigureAdd("Price", func(p Product, s domain.ReadOnlyState) (any, error) {
			return fmt.Sprintf("%.2f %s", p.Price, s.Value("currency")), nil
		})
	})
	config.Configure(cfg, func(c *domain.TypeConfig[Category]) {
		c.AddField("Title")
	})
	if err := cfg.Build(); err != nil {
		log.Fatal(err)
	}

	eng, err := augmenter.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.Augment(ctx, products, augmenter.WithState(func(_ context.Context, s domain.State) error {
		s["currency"] = "EUR"
		return nil
	}))

The result marshals to JSON with keys in declaration order. See pkg/adapters/http for
shaping HTTP responses, and cmd/augmenter for a demo server and inspection tooling.
*/
package augmenter
