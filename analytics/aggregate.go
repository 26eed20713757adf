// Package analytics computes dashboard totals and runs the interactive
// filter/sort/paginate pipeline over a normalized post collection. Every
// function is a pure transformation; the underlying collection is never
// mutated.
package analytics

import "github.com/researchaccelerator-hub/tiktok-export-analyzer/model"

// ComputeTotals sums the five counters over the whole collection and
// derives the two averages. AvgEngagementRate is the mean of the per-post
// rates, deliberately not the rate of the summed counters: a low-view post
// with high relative engagement weighs the same as a viral one. An empty
// collection yields all zeros.
func ComputeTotals(posts []model.Post) model.Totals {
	var t model.Totals
	if len(posts) == 0 {
		return t
	}
	var rateSum float64
	for _, p := range posts {
		t.Views += p.Stats.Views
		t.Likes += p.Stats.Likes
		t.Comments += p.Stats.Comments
		t.Shares += p.Stats.Shares
		t.Saves += p.Stats.Saves
		rateSum += p.EngagementRate
	}
	n := float64(len(posts))
	t.AvgEngagementRate = rateSum / n
	t.AvgViews = t.Views / n
	return t
}
