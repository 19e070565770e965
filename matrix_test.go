package featmatrix

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func joined(cs []Combination) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}

func TestMatrix_TwoGroupsOrderAndSpacing(t *testing.T) {
	m := NewMatrix(FeatureGroup{"x"}, FeatureGroup{"y"})

	want := []string{"x y", "x ", " y", " "}
	if diff := cmp.Diff(want, joined(m.Combinations())); diff != "" {
		t.Errorf("Combinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix_ThreeGroupsOdometerOrder(t *testing.T) {
	m := NewMatrix(FeatureGroup{"A"}, FeatureGroup{"B"}, FeatureGroup{"C"})

	if got := m.Len(); got != 8 {
		t.Fatalf("Len() = %d, want 8", got)
	}

	want := []string{
		"A B C",
		"A B ",
		"A  C",
		"A  ",
		" B C",
		" B ",
		"  C",
		"  ",
	}
	got := joined(m.Combinations())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combinations() mismatch (-want +got):\n%s", diff)
	}

	last := got[len(got)-1]
	if strings.TrimSpace(last) != "" {
		t.Errorf("last combination = %q, want whitespace only", last)
	}
}

func TestMatrix_Len(t *testing.T) {
	tests := []struct {
		name   string
		groups []FeatureGroup
		want   int
	}{
		{"no groups", nil, 1},
		{"single empty group", []FeatureGroup{{}}, 1},
		{"one token", []FeatureGroup{{"a"}}, 2},
		{"mixed sizes", []FeatureGroup{{"a", "b"}, {"c"}, {"d", "e", "f"}}, 3 * 2 * 4},
		{"declared empty token is not deduplicated", []FeatureGroup{{"a", ""}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatrix(tt.groups...)
			if got := m.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
			if got := len(m.Combinations()); got != tt.want {
				t.Errorf("len(Combinations()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatrix_NoGroupsYieldsEmptyCombination(t *testing.T) {
	m := NewMatrix()
	got := joined(m.Combinations())
	if diff := cmp.Diff([]string{""}, got); diff != "" {
		t.Errorf("Combinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix_LastGroupCyclesFastest(t *testing.T) {
	m := NewMatrix(FeatureGroup{"a1", "a2"}, FeatureGroup{"b1", "b2"})

	want := []string{
		"a1 b1", "a1 b2", "a1 ",
		"a2 b1", "a2 b2", "a2 ",
		" b1", " b2", " ",
	}
	if diff := cmp.Diff(want, joined(m.Combinations())); diff != "" {
		t.Errorf("Combinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMatrix_CopiesInput(t *testing.T) {
	g := FeatureGroup{"x"}
	m := NewMatrix(g)
	g[0] = "mutated"

	groups := m.Groups()
	if diff := cmp.Diff([]FeatureGroup{{"x", ""}}, groups); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}

	// Groups returns copies.
	groups[0][0] = "mutated"
	if got := m.Groups()[0][0]; got != "x" {
		t.Errorf("Groups()[0][0] = %q after mutating a copy, want %q", got, "x")
	}
}

func TestIterator(t *testing.T) {
	m := NewMatrix(FeatureGroup{"x"}, FeatureGroup{"y"})

	t.Run("indices are sequential", func(t *testing.T) {
		it := m.Iter()
		want := 0
		for it.Next() {
			if got := it.Index(); got != want {
				t.Fatalf("Index() = %d, want %d", got, want)
			}
			want++
		}
		if want != m.Len() {
			t.Fatalf("iterated %d combinations, want %d", want, m.Len())
		}
	})

	t.Run("exhausted iterator stays exhausted", func(t *testing.T) {
		it := m.Iter()
		for it.Next() {
		}
		if it.Next() {
			t.Fatal("Next() = true after exhaustion")
		}
	})

	t.Run("reset restarts enumeration", func(t *testing.T) {
		it := m.Iter()
		var first []string
		for it.Next() {
			first = append(first, it.Combination().String())
		}

		it.Reset()
		var second []string
		for it.Next() {
			second = append(second, it.Combination().String())
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("enumeration after Reset() mismatch (-first +second):\n%s", diff)
		}
	})

	t.Run("combination is a fresh slice", func(t *testing.T) {
		it := m.Iter()
		it.Next()
		c := it.Combination()
		c[0] = "mutated"
		if got := it.Combination()[0]; got != "x" {
			t.Errorf("Combination()[0] = %q, want %q", got, "x")
		}
	})
}

func TestMatrix_AllStopsEarly(t *testing.T) {
	m := NewMatrix(FeatureGroup{"a"}, FeatureGroup{"b"}, FeatureGroup{"c"})

	var seen []int
	for i := range m.All() {
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	if diff := cmp.Diff([]int{0, 1, 2}, seen); diff != "" {
		t.Errorf("All() indices mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix_String(t *testing.T) {
	m := NewMatrix(FeatureGroup{"x"}, FeatureGroup{"y"})

	want := `Groups:
  1: x, (none)
  2: y, (none)

Combinations (4):
  1: "x y"
  2: "x "
  3: " y"
  4: " "
`
	if diff := cmp.Diff(want, m.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}
