package analytics

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
)

// SortKey names a sortable column of the post table.
type SortKey string

const (
	SortViews      SortKey = "views"
	SortLikes      SortKey = "likes"
	SortComments   SortKey = "comments"
	SortShares     SortKey = "shares"
	SortSaves      SortKey = "saves"
	SortCaption    SortKey = "caption"
	SortDate       SortKey = "date"
	SortEngagement SortKey = "engagementRate"
)

// SortKeys lists every valid sort key.
var SortKeys = []SortKey{
	SortViews, SortLikes, SortComments, SortShares,
	SortSaves, SortCaption, SortDate, SortEngagement,
}

// SortDirection is the sort order of the selected column.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// DefaultPageSize is used when a QueryState carries no page size.
const DefaultPageSize = 25

// QueryState holds the caller-owned interactive table state. All fields
// are independently settable; zero/empty filter values mean pass-through.
// It never affects the underlying post collection.
type QueryState struct {
	SearchText        string
	MinViews          float64
	MinEngagementRate float64
	SortKey           SortKey
	SortDirection     SortDirection
	Page              int
	PageSize          int
}

// SelectSortKey applies the column-header click semantics: selecting a new
// column sorts ascending for caption and descending for every other
// column, and reselecting the current column flips the direction.
func (s *QueryState) SelectSortKey(key SortKey) {
	if s.SortKey == key {
		if s.SortDirection == Asc {
			s.SortDirection = Desc
		} else {
			s.SortDirection = Asc
		}
		return
	}
	s.SortKey = key
	if key == SortCaption {
		s.SortDirection = Asc
	} else {
		s.SortDirection = Desc
	}
}

// Result is one page of a query plus the pre-slice match count, which the
// caller needs to derive the page count.
type Result struct {
	Page          []model.Post
	TotalMatching int
}

// Captions compare locale-aware, matching how the table renders for users,
// not by raw bytes.
var captionCollator = collate.New(language.Und)

// Query filters, stably sorts and pages the collection. The three filters
// AND together: caption must contain the search text case-insensitively,
// views must reach MinViews and the engagement rate must reach
// MinEngagementRate, each passing everything through at its zero value.
// The input slice is left untouched.
func Query(posts []model.Post, state QueryState) Result {
	filtered := make([]model.Post, 0, len(posts))
	needle := strings.ToLower(state.SearchText)
	for _, p := range posts {
		if needle != "" && !strings.Contains(strings.ToLower(p.Caption), needle) {
			continue
		}
		if p.Stats.Views < state.MinViews {
			continue
		}
		if p.EngagementRate < state.MinEngagementRate {
			continue
		}
		filtered = append(filtered, p)
	}

	sortPosts(filtered, state.SortKey, state.SortDirection)

	page := state.Page
	if page < 1 {
		page = 1
	}
	size := state.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return Result{Page: filtered[start:end], TotalMatching: len(filtered)}
}

// PageCount derives the number of pages for a match count: always at
// least one page, even for an empty result.
func PageCount(totalMatching, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := int(math.Ceil(float64(totalMatching) / float64(pageSize)))
	if pages < 1 {
		return 1
	}
	return pages
}

func sortPosts(posts []model.Post, key SortKey, dir SortDirection) {
	if key == SortCaption {
		sort.SliceStable(posts, func(i, j int) bool {
			cmp := captionCollator.CompareString(posts[i].Caption, posts[j].Caption)
			if dir == Desc {
				return cmp > 0
			}
			return cmp < 0
		})
		return
	}
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := sortValue(posts[i], key), sortValue(posts[j], key)
		if dir == Desc {
			return a > b
		}
		return a < b
	})
}

func sortValue(p model.Post, key SortKey) float64 {
	switch key {
	case SortLikes:
		return p.Stats.Likes
	case SortComments:
		return p.Stats.Comments
	case SortShares:
		return p.Stats.Shares
	case SortSaves:
		return p.Stats.Saves
	case SortDate:
		if p.CreatedAt != nil {
			return *p.CreatedAt
		}
		return 0
	case SortEngagement:
		return p.EngagementRate
	default:
		return p.Stats.Views
	}
}

// TopN returns the n highest posts by the given metric, ties kept in
// original collection order. n defaults to 10 when not positive.
func TopN(posts []model.Post, metric SortKey, n int) []model.Post {
	if n < 1 {
		n = 10
	}
	ranked := make([]model.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return sortValue(ranked[i], metric) > sortValue(ranked[j], metric)
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// BarWidths scales each post's metric to [0,1] relative to the largest
// value in the slice, for bar-chart rendering. The floor of 1 on the
// divisor keeps an all-zero slice from dividing by zero.
func BarWidths(posts []model.Post, metric SortKey) []float64 {
	max := 1.0
	for _, p := range posts {
		if v := sortValue(p, metric); v > max {
			max = v
		}
	}
	widths := make([]float64, len(posts))
	for i, p := range posts {
		widths[i] = sortValue(p, metric) / max
	}
	return widths
}
