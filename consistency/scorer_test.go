package consistency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditDistanceScorer(t *testing.T) {
	scorer := EditDistanceScorer{}

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "hello", b: "hello", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "single trailing change", a: "abcd", b: "abce", want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, scorer.Score(tt.a, tt.b), 0.01)
		})
	}
}

func TestEditDistanceScorer_Symmetric(t *testing.T) {
	scorer := EditDistanceScorer{}
	require.Equal(t, scorer.Score("kinase", "kinases"), scorer.Score("kinases", "kinase"))
}

func TestEditDistanceScorer_NearIdenticalAboveDefaultThreshold(t *testing.T) {
	// A one-character change in a long identifier stays above the default
	// similarity threshold.
	a := "COc1ccc2c(NC(=O)Nc3cccc(C(F)(F)F)n3)ccnc2c1"
	b := "COc1ccc2c(NC(=O)Nc3cccc(C(F)(F)F)n3)ccnc2c2"
	require.Greater(t, EditDistanceScorer{}.Score(a, b), DefaultSimilarityThreshold)
}
