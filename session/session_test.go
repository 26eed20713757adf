package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/analytics"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/common"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
)

func TestLoadEndToEnd(t *testing.T) {
	doc, err := common.ParseDocument([]byte(`{
		"items": [{
			"id": 1,
			"desc": "a",
			"stats": {
				"playCount": 100,
				"diggCount": 5,
				"commentCount": 2,
				"shareCount": 1,
				"collectCount": 2
			},
			"createTime": 1700000000
		}]
	}`))
	require.NoError(t, err)

	sess := Load(doc)
	require.False(t, sess.Empty())
	require.Len(t, sess.Posts(), 1)

	p := sess.Posts()[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "a", p.Caption)
	assert.InDelta(t, 10.0, p.EngagementRate, 1e-9)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, float64(1700000000), *p.CreatedAt)

	totals := sess.Totals()
	assert.Equal(t, float64(100), totals.Views)
	assert.InDelta(t, 10.0, totals.AvgEngagementRate, 1e-9)

	res := sess.Query(analytics.QueryState{Page: 1, PageSize: 25})
	assert.Equal(t, 1, res.TotalMatching)
	require.Len(t, res.Page, 1)
	assert.Equal(t, "1", res.Page[0].ID)
	assert.Equal(t, 1, analytics.PageCount(res.TotalMatching, 25))
}

func TestLoadDocumentWithoutPosts(t *testing.T) {
	doc, err := common.ParseDocument([]byte(`{"some": {"other": "structure"}}`))
	require.NoError(t, err)

	sess := Load(doc)
	assert.True(t, sess.Empty())
	assert.NotEmpty(t, sess.ID())

	// Account and totals still render, with placeholders and zeros.
	assert.Equal(t, model.Placeholder, sess.Account().Handle)
	assert.Equal(t, model.Totals{}, sess.Totals())

	res := sess.Query(analytics.QueryState{})
	assert.Zero(t, res.TotalMatching)
	assert.Equal(t, 1, analytics.PageCount(res.TotalMatching, 25))
}

func TestLoadAccountSummary(t *testing.T) {
	doc, err := common.ParseDocument([]byte(`{
		"userInfo": {
			"author": {"uniqueId": "creator", "nickname": "The Creator"},
			"authorStats": {"followerCount": 1000, "heartCount": 5000}
		},
		"itemList": [
			{"id": "v1", "desc": "clip", "stats": {"playCount": 10}}
		]
	}`))
	require.NoError(t, err)

	sess := Load(doc)
	acct := sess.Account()
	assert.Equal(t, "creator", acct.Handle)
	assert.Equal(t, "The Creator", acct.DisplayName)
	require.NotNil(t, acct.Followers)
	assert.Equal(t, float64(1000), *acct.Followers)
}

func TestLoadReplacementSessionsAreIndependent(t *testing.T) {
	doc1, err := common.ParseDocument([]byte(`[{"id": "x", "stats": {"playCount": 1}}]`))
	require.NoError(t, err)
	doc2, err := common.ParseDocument([]byte(`[]`))
	require.NoError(t, err)

	first := Load(doc1)
	second := Load(doc2)

	// Loading a new document never merges into the old one.
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Len(t, first.Posts(), 1)
	assert.True(t, second.Empty())
}

func TestSessionTopN(t *testing.T) {
	doc, err := common.ParseDocument([]byte(`[
		{"id": "small", "stats": {"playCount": 10}},
		{"id": "big", "stats": {"playCount": 100}}
	]`))
	require.NoError(t, err)

	top := Load(doc).TopN(analytics.SortViews, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "big", top[0].ID)
}
