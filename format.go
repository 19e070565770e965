package featmatrix

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the groups and every combination.
// Combinations are quoted so that empty variants stay visible.
func (m *Matrix) String() string {
	var b strings.Builder

	b.WriteString("Groups:\n")
	for i, g := range m.groups {
		writeGroup(&b, i+1, g)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Combinations (%d):\n", m.Len())
	for i, c := range m.All() {
		fmt.Fprintf(&b, "  %d: %q\n", i+1, c.String())
	}

	return b.String()
}

func writeGroup(b *strings.Builder, n int, g FeatureGroup) {
	names := make([]string, 0, len(g))
	for _, tok := range g {
		if tok == "" {
			tok = "(none)"
		}
		names = append(names, tok)
	}
	fmt.Fprintf(b, "  %d: %s\n", n, strings.Join(names, ", "))
}
