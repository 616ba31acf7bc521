package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula_Grammar(t *testing.T) {
	tests := []struct {
		src  string
		kind FormulaKind
		key  string
		n    int
	}{
		{"fixed:4", FormulaLiteral, "", 4},
		{"fixed:0", FormulaLiteral, "", 0},
		{"baseball_tunnels", FormulaRef, "baseball_tunnels", 0},
		{"basketball_courts_full*2", FormulaScale, "basketball_courts_full", 2},
		{"baseball_tunnels-1", FormulaOffset, "baseball_tunnels", -1},
		{"volleyball_courts+2", FormulaOffset, "volleyball_courts", 2},
	}

	for _, tt := range tests {
		f, err := ParseFormula(tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.kind, f.Kind, tt.src)
		assert.Equal(t, tt.key, f.Key, tt.src)
		assert.Equal(t, tt.n, f.N, tt.src)
		assert.Equal(t, tt.src, f.String())
	}
}

func TestParseFormula_Rejects(t *testing.T) {
	for _, src := range []string{
		"",
		"fixed:abc",
		"fixed:-1",
		"courts/2",
		"courts*two",
		"courts*-3",
		"Courts",
		"a b",
		"courts*2*3",
	} {
		_, err := ParseFormula(src)
		assert.Error(t, err, "expected parse error for %q", src)
	}
}

func TestFormula_Resolve(t *testing.T) {
	counts := map[string]int{
		"baseball_tunnels":       8,
		"basketball_courts_full": 2,
	}

	assert.Equal(t, 7, MustFormula("baseball_tunnels-1").Resolve(counts))
	assert.Equal(t, 4, MustFormula("fixed:4").Resolve(map[string]int{}))
	assert.Equal(t, 4, MustFormula("basketball_courts_full*2").Resolve(counts))
	assert.Equal(t, 8, MustFormula("baseball_tunnels").Resolve(counts))
	assert.Equal(t, 10, MustFormula("baseball_tunnels+2").Resolve(counts))
}

func TestFormula_Resolve_MissingKeyDefaultsToZero(t *testing.T) {
	counts := map[string]int{}

	assert.Equal(t, 0, MustFormula("soccer_fields_small").Resolve(counts))
	assert.Equal(t, 0, MustFormula("soccer_fields_small*3").Resolve(counts))
	// Offset below zero floors at zero.
	assert.Equal(t, 0, MustFormula("soccer_fields_small-1").Resolve(counts))
	assert.Equal(t, 2, MustFormula("soccer_fields_small+2").Resolve(counts))
}

func TestFormula_Resolve_FloorsAtZero(t *testing.T) {
	counts := map[string]int{"courts": 1}
	f := MustFormula("courts-3")
	assert.Equal(t, 0, f.Resolve(counts))
}
