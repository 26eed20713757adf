// Package session owns the lifecycle of one loaded export document: scan,
// normalize, aggregate, then serve read-only queries until the caller
// loads a new document and drops this one. There is no merge path between
// documents.
package session

import (
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/analytics"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/common"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/normalize"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/scanner"
)

// Session holds the immutable derived state of one loaded document. All
// reads are pure, so concurrent readers are safe; there is no mutation
// after Load returns.
type Session struct {
	id      string
	posts   []model.Post
	account model.AccountSummary
	totals  model.Totals
}

// Load ingests an already-parsed export document. A document with zero
// recognizable posts is not an error: the session still carries the
// account summary and all-zero totals, and Empty reports the state so the
// caller can render its "couldn't find posts" message.
func Load(doc any) *Session {
	rawPosts := scanner.FindPosts(doc)
	posts := make([]model.Post, 0, len(rawPosts))
	for i, node := range rawPosts {
		posts = append(posts, normalize.Post(node, i))
	}

	s := &Session{
		id:      common.GenerateSessionID(),
		posts:   posts,
		account: normalize.Account(scanner.FindAccountNode(doc)),
		totals:  analytics.ComputeTotals(posts),
	}

	log.Info().
		Str("session_id", s.id).
		Int("post_count", len(posts)).
		Str("handle", s.account.Handle).
		Msg("Export document loaded")

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Posts returns the normalized post collection in discovery order. The
// slice is shared; callers must not modify it.
func (s *Session) Posts() []model.Post {
	return s.posts
}

// Account returns the profile summary, placeholder-filled when the
// document carried no account node.
func (s *Session) Account() model.AccountSummary {
	return s.account
}

// Totals returns the dashboard aggregates over the full collection.
func (s *Session) Totals() model.Totals {
	return s.totals
}

// Empty reports whether the scanner found no posts in the document.
func (s *Session) Empty() bool {
	return len(s.posts) == 0
}

// Query runs one filter/sort/paginate pass over the full collection.
func (s *Session) Query(state analytics.QueryState) analytics.Result {
	return analytics.Query(s.posts, state)
}

// TopN returns the highest-ranked posts by the given metric for charting.
func (s *Session) TopN(metric analytics.SortKey, n int) []model.Post {
	return analytics.TopN(s.posts, metric, n)
}
