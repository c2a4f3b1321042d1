package graph

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// GenerateMermaid produces a Mermaid flowchart of the given configurations.
// Each type is a node; inheritance is drawn as a dotted arrow to the embedded type and
// nested fields as labeled arrows to the type their value is shaped with:
// - Type with own rules: [Rectangle]
// - Empty configuration: ([Stadium])
// - Referenced but undeclared type: {{Hexagon}}
func GenerateMermaid(configs []*domain.TypeConfiguration) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[reflect.Type]bool, len(configs))
	for _, tc := range configs {
		declared[tc.Type()] = true
	}
	undeclared := make(map[reflect.Type]bool)

	for _, tc := range configs {
		id := mermaidID(tc.Type())
		opener, closer := "[", "]"
		if tc.Empty() {
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, tc.Type(), closer)

		// Only the direct base is drawn; transitive ones follow from its own edges.
		if bases := tc.Bases(); len(bases) > 0 {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", id, mermaidID(bases[len(bases)-1].Type()))
		}

		for _, rule := range tc.Fields() {
			if !rule.Nested {
				continue
			}
			f, ok := typeinfo.FieldByName(tc.Type(), rule.Name)
			if !ok {
				continue
			}
			target := shapedType(f.Type)
			if target == nil {
				continue
			}
			if !declared[target] {
				undeclared[target] = true
			}
			label := strings.ReplaceAll(rule.Key(), "\"", "'")
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", id, label, mermaidID(target))
		}
	}

	for t := range undeclared {
		fmt.Fprintf(&sb, "    %s{{\"%s\"}}\n", mermaidID(t), t)
	}
	return sb.String()
}

// shapedType returns the struct type a nested field's value is shaped with, looking through
// pointers and collections. Interfaces and primitives have no static target.
func shapedType(t reflect.Type) reflect.Type {
	t = typeinfo.Indirect(t)
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = typeinfo.Indirect(t.Elem())
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func mermaidID(t reflect.Type) string {
	s := t.String()
	for _, r := range []string{".", "-", "/", "\\", "[", "]", "*", " "} {
		s = strings.ReplaceAll(s, r, "_")
	}
	return s
}
