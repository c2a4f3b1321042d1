package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/augmenter/internal/presentation/graph"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type base struct{ ID int }

type order struct {
	base
	Lines    []*line
	Customer customer
	Tags     []string
}

type line struct{ SKU string }

type customer struct{ Name string }

type empty struct{}

func TestGenerateMermaid(t *testing.T) {
	baseCfg := domain.NewTypeConfig(func(c *domain.TypeConfig[base]) { c.AddField("ID") }).Freeze()
	orderOwn := domain.NewTypeConfig(func(c *domain.TypeConfig[order]) {
		c.AddNestedField("Lines", nil, nil).As("lines")
		c.AddNestedField("Customer", nil, nil)
		c.AddNestedField("Tags", nil, nil)
	})
	orderCfg := domain.NewEffectiveConfiguration(orderOwn.Type(), orderOwn, []*domain.TypeConfiguration{baseCfg})
	lineCfg := domain.NewTypeConfig(func(c *domain.TypeConfig[line]) { c.AddField("SKU") })
	emptyCfg := domain.NewTypeConfig[empty](nil)

	out := graph.GenerateMermaid([]*domain.TypeConfiguration{baseCfg, orderCfg, lineCfg, emptyCfg})

	tests := []struct {
		name string
		want string
	}{
		{"Header", "graph TD\n"},
		{"Declared node", "graph_test_order[\"graph_test.order\"]"},
		{"Inheritance edge", "graph_test_order -.-> graph_test_base"},
		{"Slice of pointers nested edge", "graph_test_order -- \"lines\" --> graph_test_line"},
		{"Undeclared nested target", "graph_test_customer{{\"graph_test.customer\"}}"},
		{"Empty configuration shape", "graph_test_empty([\"graph_test.empty\"])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.want)
		})
	}

	assert.NotContains(t, out, "Tags", "primitive collections have no target type")
	assert.Equal(t, 1, strings.Count(out, "{{"), "declared targets are not redrawn")
}
