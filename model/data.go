package model

// Placeholder is the display value used whenever a text field is missing
// from the source export.
const Placeholder = "—"

// Stats holds the five normalized engagement counters of a single post.
// Every field is always present; missing or unparseable source values
// normalize to 0. Values stay float64 because statsV2-style exports carry
// counters as strings, occasionally fractional, and those pass through
// unrounded.
type Stats struct {
	Views    float64 `json:"views"`
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
	Saves    float64 `json:"saves"`
}

// Music describes the sound attached to a post.
type Music struct {
	Title      string `json:"title,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

// Post is the canonical, immutable post record built once per raw export
// node at ingestion time. EngagementRate is a percentage, not a fraction;
// it is 0 when Views is 0. CreatedAt is the raw epoch-seconds value from
// the export, nil when the node carried no timestamp.
type Post struct {
	ID             string   `json:"id"`
	Caption        string   `json:"caption"`
	Stats          Stats    `json:"stats"`
	EngagementRate float64  `json:"engagement_rate"`
	CreatedAt      *float64 `json:"created_at,omitempty"`
	Music          Music    `json:"music"`
	Tags           []string `json:"tags,omitempty"`
}

// AccountSummary is the canonical profile summary extracted from the first
// account-like node of a document. Text fields default to Placeholder and
// numeric fields stay nil when the export does not carry them.
type AccountSummary struct {
	Handle      string   `json:"handle"`
	DisplayName string   `json:"display_name"`
	Followers   *float64 `json:"followers,omitempty"`
	Following   *float64 `json:"following,omitempty"`
	VideoCount  *float64 `json:"video_count,omitempty"`
	TotalLikes  *float64 `json:"total_likes,omitempty"`
}

// Totals aggregates a full post collection for the dashboard cards. It is
// always a pure function of the current collection, never persisted.
// AvgEngagementRate is the mean of the per-post rates, not a rate computed
// from the summed counters.
type Totals struct {
	Views             float64 `json:"views"`
	Likes             float64 `json:"likes"`
	Comments          float64 `json:"comments"`
	Shares            float64 `json:"shares"`
	Saves             float64 `json:"saves"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgViews          float64 `json:"avg_views"`
}
