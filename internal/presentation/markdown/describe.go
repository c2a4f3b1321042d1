// Package markdown renders effective type configurations as markdown for the inspect command.
package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/augmenter/pkg/domain"
)

// Describe renders one section per configuration, in the given order.
func Describe(configs []*domain.TypeConfiguration) string {
	var sb strings.Builder
	sb.WriteString("# Type configurations\n\n")
	if len(configs) == 0 {
		sb.WriteString("_No declared types._\n")
		return sb.String()
	}
	for _, tc := range configs {
		describeOne(&sb, tc)
	}
	return sb.String()
}

func describeOne(sb *strings.Builder, tc *domain.TypeConfiguration) {
	fmt.Fprintf(sb, "## %s\n\n", tc.Type())

	if bases := tc.Bases(); len(bases) > 0 {
		names := make([]string, 0, len(bases))
		for _, b := range bases {
			names = append(names, "`"+b.Type().String()+"`")
		}
		fmt.Fprintf(sb, "Inherits: %s\n\n", strings.Join(names, " → "))
	}

	chain := tc.Chain()
	var fields int
	for _, c := range chain {
		fields += len(c.Fields())
	}
	if fields > 0 {
		sb.WriteString("| Field | Key | Nested | Declared on |\n|---|---|---|---|\n")
		for _, c := range chain {
			for _, f := range c.Fields() {
				nested := ""
				if f.Nested {
					nested = "yes"
					if nc := c.Nested(f.Name); nc != nil {
						nested = nestedNote(nc)
					}
				}
				fmt.Fprintf(sb, "| %s | `%s` | %s | %s |\n", f.Name, f.Key(), nested, c.Type())
			}
		}
		sb.WriteString("\n")
	}

	var augments int
	for _, c := range chain {
		augments += len(c.Augments())
	}
	if augments > 0 {
		sb.WriteString("| # | Op | Key | Conditional | Declared on |\n|---|---|---|---|---|\n")
		i := 1
		for _, c := range chain {
			for _, a := range c.Augments() {
				cond := ""
				if a.Kind == domain.AugmentRemove && a.Value != nil {
					cond = "yes"
				}
				fmt.Fprintf(sb, "| %d | %s | `%s` | %s | %s |\n", i, a.Kind, a.Name, cond, c.Type())
				i++
			}
		}
		sb.WriteString("\n")
	}

	if fields == 0 && augments == 0 {
		sb.WriteString("_Empty configuration: objects are emitted with no keys._\n\n")
	}
}

func nestedNote(nc *domain.NestedConfig) string {
	var parts []string
	if nc.Extra != nil {
		parts = append(parts, "extra config")
	}
	if nc.AddState != nil {
		parts = append(parts, "scoped state")
	}
	return "yes (" + strings.Join(parts, ", ") + ")"
}
