package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FormulaKind discriminates the parsed quantity formula variants.
type FormulaKind int

const (
	// FormulaLiteral is a constant quantity ("fixed:4").
	FormulaLiteral FormulaKind = iota
	// FormulaRef looks up a unit count directly ("baseball_tunnels").
	FormulaRef
	// FormulaScale multiplies a unit count ("basketball_courts_full*2").
	FormulaScale
	// FormulaOffset adds a signed constant to a unit count ("baseball_tunnels-1").
	FormulaOffset
)

// Formula is a quantity formula parsed once at catalog load time.
// Evaluation is a pure function over the current unit counts.
type Formula struct {
	Kind FormulaKind
	Key  string // unit-type key for Ref/Scale/Offset
	N    int    // literal value, scale factor, or signed offset
	src  string
}

// ParseFormula parses a quantity formula string. Supported grammar:
//
//	fixed:N    constant N
//	key        direct unit count lookup
//	key*N      lookup scaled by N
//	key-N      lookup minus N
//	key+N      lookup plus N
//
// Anything else is a catalog configuration error.
func ParseFormula(src string) (Formula, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return Formula{}, eris.New("catalog: empty quantity formula")
	}

	if rest, ok := strings.CutPrefix(s, "fixed:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return Formula{}, eris.Errorf("catalog: bad fixed quantity %q", src)
		}
		return Formula{Kind: FormulaLiteral, N: n, src: s}, nil
	}

	if key, arg, ok := strings.Cut(s, "*"); ok {
		n, err := parseOperand(key, arg)
		if err != nil {
			return Formula{}, eris.Wrapf(err, "catalog: parse formula %q", src)
		}
		return Formula{Kind: FormulaScale, Key: key, N: n, src: s}, nil
	}
	if key, arg, ok := strings.Cut(s, "-"); ok {
		n, err := parseOperand(key, arg)
		if err != nil {
			return Formula{}, eris.Wrapf(err, "catalog: parse formula %q", src)
		}
		return Formula{Kind: FormulaOffset, Key: key, N: -n, src: s}, nil
	}
	if key, arg, ok := strings.Cut(s, "+"); ok {
		n, err := parseOperand(key, arg)
		if err != nil {
			return Formula{}, eris.Wrapf(err, "catalog: parse formula %q", src)
		}
		return Formula{Kind: FormulaOffset, Key: key, N: n, src: s}, nil
	}

	if !validUnitKey(s) {
		return Formula{}, eris.Errorf("catalog: unrecognized formula %q", src)
	}
	return Formula{Kind: FormulaRef, Key: s, src: s}, nil
}

// MustFormula parses a formula or panics. For static catalog literals only.
func MustFormula(src string) Formula {
	f, err := ParseFormula(src)
	if err != nil {
		panic(err)
	}
	return f
}

func parseOperand(key, arg string) (int, error) {
	if !validUnitKey(key) {
		return 0, eris.Errorf("bad unit key %q", key)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, eris.Errorf("bad operand %q", arg)
	}
	return n, nil
}

func validUnitKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Resolve evaluates the formula against the given unit counts and returns a
// non-negative integer quantity. A missing unit key resolves to 0 with a
// warning rather than an error: estimation must degrade, not crash.
func (f Formula) Resolve(counts map[string]int) int {
	if f.Kind == FormulaLiteral {
		return f.N
	}

	base, ok := counts[f.Key]
	if !ok {
		zap.L().Warn("catalog: formula references missing unit count",
			zap.String("formula", f.src),
			zap.String("key", f.Key),
		)
		base = 0
	}

	var q int
	switch f.Kind {
	case FormulaRef:
		q = base
	case FormulaScale:
		q = base * f.N
	case FormulaOffset:
		q = base + f.N
	}
	if q < 0 {
		q = 0
	}
	return q
}

// String returns the original formula source text.
func (f Formula) String() string { return f.src }

// MarshalYAML round-trips the formula as its source string.
func (f Formula) MarshalYAML() (any, error) { return f.src, nil }

// UnmarshalYAML parses the formula from its source string.
func (f *Formula) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFormula(s)
	if err != nil {
		return fmt.Errorf("unmarshal formula: %w", err)
	}
	*f = parsed
	return nil
}
