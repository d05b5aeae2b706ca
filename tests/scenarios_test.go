package tests

import (
	"east/ast"
	"math"
	"testing"
)

const eps = 1e-9

var algorithms = []ast.Algorithm{ast.AlgorithmNaive, ast.AlgorithmLinear, ast.AlgorithmEASA}

// End-to-end matching scenarios, checked for every backend. The
// expected values are the fixed points of the conditional-probability
// scoring formula; each scenario also pins cross-backend agreement.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name       string
		fragments  []string
		query      string
		normalized bool
		want       float64
	}{
		{"shared prefix", []string{"ABCD", "ABCE"}, "ABC", true, 0.5416666666666666},
		{"full fragment", []string{"ABCD", "ABCE"}, "ABCD", true, 0.44270833333333337},
		{"disjoint alphabet", []string{"ABCD", "ABCE"}, "XYZ", true, 0},
		{"repeated letter", []string{"AAAA"}, "AAA", true, 0.8935185185185185},
		{"partial tail", []string{"AAAA"}, "AAAB", false, 1.2916666666666665},
		{"word in compound", []string{"HELLO", "WORLD", "HELLOWORLD"}, "HELLO", true, 0.5312222222222222},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := make([]float64, len(algorithms))
			for i, algorithm := range algorithms {
				index, err := ast.BuildIndex(tt.fragments, algorithm)
				if err != nil {
					t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
				}
				scores[i] = index.Score(tt.query, tt.normalized, nil)
				if math.Abs(scores[i]-tt.want) > eps {
					t.Errorf("%s: Score(%q) = %v, want %v", algorithm, tt.query, scores[i], tt.want)
				}
			}
			for i := 1; i < len(scores); i++ {
				if math.Abs(scores[i]-scores[0]) > eps {
					t.Errorf("Backends disagree: %v", scores)
				}
			}
		})
	}
}

func TestNormalizedScoreRange(t *testing.T) {
	fragments := []string{"BANANA", "BANDANA", "CABANA"}
	queries := []string{"BAN", "ANA", "NAB", "BANANA", "CAB", "Q", "QQQQ", "A"}
	for _, algorithm := range algorithms {
		index, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		for _, q := range queries {
			got := index.Score(q, true, nil)
			if got < 0 || got > 1 {
				t.Errorf("%s: Score(%q) = %v out of [0,1]", algorithm, q, got)
			}
		}
	}
}

func TestSubstringQueriesScorePositive(t *testing.T) {
	fragments := []string{"HELLO", "WORLD", "HELLOWORLD"}
	for _, algorithm := range algorithms {
		index, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		for _, q := range []string{"HELLO", "ELL", "OWO", "D", "LOW"} {
			if got := index.Score(q, true, nil); got <= 0 {
				t.Errorf("%s: substring query %q scored %v, want > 0", algorithm, q, got)
			}
		}
	}
}

func TestDisjointAlphabetScoresZero(t *testing.T) {
	fragments := []string{"HELLO", "WORLD"}
	for _, algorithm := range algorithms {
		index, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		for _, normalized := range []bool{true, false} {
			if got := index.Score("ZZTQX", normalized, nil); got != 0 {
				t.Errorf("%s: disjoint query scored %v, want 0", algorithm, got)
			}
			if got := index.Score("", normalized, nil); got != 0 {
				t.Errorf("%s: empty query scored %v, want 0", algorithm, got)
			}
		}
	}
}

func TestAnnotationConservation(t *testing.T) {
	fragments := []string{"MINE", "MINING", "MINT"}
	runeTotal := 0
	for _, f := range fragments {
		runeTotal += len(f)
	}
	for _, algorithm := range algorithms {
		index, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		rootWeight := -1
		if err := index.Traverse(ast.PreOrder, func(n ast.NodeInfo) {
			if rootWeight == -1 {
				rootWeight = n.Weight
			}
		}); err != nil {
			t.Fatalf("%s: traversal failed: %v", algorithm, err)
		}
		if rootWeight != runeTotal {
			t.Errorf("%s: root annotation %d, want %d", algorithm, rootWeight, runeTotal)
		}
	}
}

func TestIdempotentConstruction(t *testing.T) {
	fragments := []string{"ABAB", "BABA", "ABBA"}
	queries := []string{"AB", "BA", "ABBA", "BB"}
	for _, algorithm := range algorithms {
		first, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		second, err := ast.BuildIndex(fragments, algorithm)
		if err != nil {
			t.Fatalf("BuildIndex(%s) failed: %v", algorithm, err)
		}
		for _, q := range queries {
			a := first.Score(q, true, nil)
			b := second.Score(q, true, nil)
			if a != b {
				t.Errorf("%s: rebuilt index scores %q differently: %v vs %v", algorithm, q, a, b)
			}
		}
	}
}
