package consistency

import "github.com/xrash/smetrics"

// SimilarityScorer produces a similarity measure between two strings on a
// 0-100 scale, where 100 means identical.
type SimilarityScorer interface {
	Score(a, b string) float64
}

// EditDistanceScorer scores string similarity from the Wagner-Fischer edit
// distance with substitutions costing two (an indel distance), so the score
// is the percentage of characters the two strings share in order.
type EditDistanceScorer struct{}

func (EditDistanceScorer) Score(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 100 * float64(total-dist) / float64(total)
}
