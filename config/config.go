// Package config provides configuration structures for the analyzer CLI.
package config

import (
	"fmt"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/analytics"
)

// AnalyzerConfig holds the caller-side settings for one analyzer run: the
// initial query state for the interactive table plus output options.
type AnalyzerConfig struct {
	SearchText        string  `yaml:"search_text" json:"search_text"`                 // Case-insensitive caption filter
	MinViews          float64 `yaml:"min_views" json:"min_views"`                     // Minimum view count filter
	MinEngagementRate float64 `yaml:"min_engagement_rate" json:"min_engagement_rate"` // Minimum engagement-rate filter (percent)
	SortKey           string  `yaml:"sort_key" json:"sort_key"`                       // Table sort column
	SortDirection     string  `yaml:"sort_direction" json:"sort_direction"`           // "asc" or "desc"
	Page              int     `yaml:"page" json:"page"`                               // 1-based page number
	PageSize          int     `yaml:"page_size" json:"page_size"`                     // Rows per page
	TopN              int     `yaml:"top_n" json:"top_n"`                             // Size of the ranked chart lists
	CSVPath           string  `yaml:"csv_path" json:"csv_path"`                       // CSV output path, empty disables export
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults.
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		SortKey:       string(analytics.SortDate),
		SortDirection: string(analytics.Desc),
		Page:          1,
		PageSize:      analytics.DefaultPageSize,
		TopN:          10,
	}
}

// Validate checks if the configuration is valid.
func (c *AnalyzerConfig) Validate() error {
	validKey := false
	for _, k := range analytics.SortKeys {
		if string(k) == c.SortKey {
			validKey = true
			break
		}
	}
	if !validKey {
		return fmt.Errorf("invalid sort_key '%s', must be one of: views, likes, comments, shares, saves, caption, date, engagementRate", c.SortKey)
	}

	if c.SortDirection != string(analytics.Asc) && c.SortDirection != string(analytics.Desc) {
		return fmt.Errorf("invalid sort_direction '%s', must be asc or desc", c.SortDirection)
	}

	if c.Page < 1 {
		return fmt.Errorf("page must be at least 1")
	}

	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1")
	}

	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1")
	}

	if c.MinViews < 0 {
		return fmt.Errorf("min_views cannot be negative")
	}

	if c.MinEngagementRate < 0 {
		return fmt.Errorf("min_engagement_rate cannot be negative")
	}

	return nil
}

// QueryState converts the configuration into the query-pipeline state.
func (c *AnalyzerConfig) QueryState() analytics.QueryState {
	return analytics.QueryState{
		SearchText:        c.SearchText,
		MinViews:          c.MinViews,
		MinEngagementRate: c.MinEngagementRate,
		SortKey:           analytics.SortKey(c.SortKey),
		SortDirection:     analytics.SortDirection(c.SortDirection),
		Page:              c.Page,
		PageSize:          c.PageSize,
	}
}
