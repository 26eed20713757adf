// Package export flattens a (filtered, sorted) post collection into CSV
// for download. Output is plain RFC-4180 material: the caption field is
// always double-quoted with internal quotes doubled, so any standard CSV
// reader round-trips it exactly; numeric fields are emitted bare.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
)

// DefaultFilename is the download filename convention for exported posts.
const DefaultFilename = "tiktok-videos.csv"

// Header lists the exported columns in order.
var Header = []string{
	"Caption", "Views", "Likes", "Comments", "Shares", "Saves",
	"Engagement Rate (%)", "Date",
}

// Rows converts posts into raw field rows in Header order. Fields are
// unescaped values; Write applies CSV quoting.
func Rows(posts []model.Post) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.Caption,
			formatCount(p.Stats.Views),
			formatCount(p.Stats.Likes),
			formatCount(p.Stats.Comments),
			formatCount(p.Stats.Shares),
			formatCount(p.Stats.Saves),
			strconv.FormatFloat(p.EngagementRate, 'f', 2, 64),
			dateString(p.CreatedAt),
		})
	}
	return rows
}

// Write emits the header and one row per post. The caption column is
// quoted unconditionally; the remaining columns never need quoting.
func Write(w io.Writer, posts []model.Post) error {
	if _, err := fmt.Fprintf(w, "%s,%s\n", quoteField(Header[0]), strings.Join(Header[1:], ",")); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Rows(posts) {
		if _, err := fmt.Fprintf(w, "%s,%s\n", quoteField(row[0]), strings.Join(row[1:], ",")); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// dateString renders the post date from its epoch-seconds timestamp, or
// the placeholder when the export carried none.
func dateString(ts *float64) string {
	if ts == nil || *ts <= 0 {
		return model.Placeholder
	}
	return time.Unix(int64(*ts), 0).UTC().Format("2006-01-02")
}
