// Package normalize turns raw export nodes found by the scanner into the
// canonical model types. Every function here is total: whatever garbage a
// drifting export format supplies, the result is a complete record with
// zeroed or placeholder fields, never an error.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/researchaccelerator-hub/tiktok-export-analyzer/model"
	"github.com/researchaccelerator-hub/tiktok-export-analyzer/scanner"
)

var (
	viewAliases    = []string{"playCount"}
	likeAliases    = []string{"diggCount", "likeCount"}
	commentAliases = []string{"commentCount"}
	shareAliases   = []string{"shareCount"}
	saveAliases    = []string{"collectCount"}

	idAliases      = []string{"id", "videoId", "video_id"}
	captionAliases = []string{"desc", "description"}
	timeAliases    = []string{"createTime", "create_time"}
	musicAliases   = []string{"music"}
	tagAliases     = []string{"textExtra", "text_extra"}

	musicTitleAliases  = []string{"title", "musicName"}
	musicAuthorAliases = []string{"authorName", "author"}

	authorObjAliases   = []string{"author", "user"}
	handleAliases      = []string{"uniqueId", "unique_id", "secUid"}
	displayNameAliases = []string{"nickname", "nickName", "displayName"}
	authorStatsAliases = []string{"authorStats", "authorStatsV2", "stats"}
	followerAliases    = []string{"followerCount", "fans"}
	followingAliases   = []string{"followingCount", "following"}
	videoCountAliases  = []string{"videoCount", "video_count"}
	totalLikeAliases   = []string{"heartCount", "diggCount", "heart"}
)

// Stats extracts the five engagement counters from a raw post node.
// statsV2-style exports carry counters as strings, so every value goes
// through numeric coercion; anything missing, unparseable, non-finite or
// negative becomes 0. Fractional values pass through unrounded.
func Stats(node map[string]any) model.Stats {
	stats := scanner.StatsObject(node)
	return model.Stats{
		Views:    counter(stats, viewAliases),
		Likes:    counter(stats, likeAliases),
		Comments: counter(stats, commentAliases),
		Shares:   counter(stats, shareAliases),
		Saves:    counter(stats, saveAliases),
	}
}

func counter(stats map[string]any, aliases []string) float64 {
	raw, ok := scanner.FirstPresent(stats, aliases)
	if !ok || raw == nil {
		return 0
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Post builds the canonical record for one raw node. index is the node's
// position in discovery order and becomes the ID when the node carries no
// native identifier; such IDs are positional, not globally unique.
func Post(node map[string]any, index int) model.Post {
	stats := Stats(node)
	p := model.Post{
		ID:      postID(node, index),
		Caption: caption(node),
		Stats:   stats,
		Music:   music(node),
		Tags:    Tags(node),
	}
	// Percentage, not a fraction. Zero views means zero rate, never NaN.
	if stats.Views > 0 {
		p.EngagementRate = 100 * (stats.Likes + stats.Comments + stats.Shares + stats.Saves) / stats.Views
	}
	if raw, ok := scanner.FirstPresent(node, timeAliases); ok && raw != nil {
		// Raw epoch seconds, interpreted downstream. Kept as supplied.
		if ts, err := cast.ToFloat64E(raw); err == nil {
			p.CreatedAt = &ts
		}
	}
	return p
}

func postID(node map[string]any, index int) string {
	if raw, ok := scanner.FirstPresent(node, idAliases); ok && raw != nil {
		if id, err := cast.ToStringE(raw); err == nil && id != "" {
			return id
		}
	}
	return strconv.Itoa(index)
}

func caption(node map[string]any) string {
	raw, ok := scanner.FirstPresent(node, captionAliases)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cast.ToString(raw))
}

func music(node map[string]any) model.Music {
	raw, ok := scanner.FirstPresent(node, musicAliases)
	if !ok {
		return model.Music{}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return model.Music{}
	}
	return model.Music{
		Title:      stringAlias(obj, musicTitleAliases),
		AuthorName: stringAlias(obj, musicAuthorAliases),
	}
}

// Tags derives the hashtag/mention list from a node's text-extra entries:
// "#name" for hashtag entries, "@id" for mention entries. Entries carrying
// neither are dropped.
func Tags(node map[string]any) []string {
	raw, ok := scanner.FirstPresent(node, tagAliases)
	if !ok {
		return nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	var tags []string
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name := cast.ToString(obj["hashtagName"]); name != "" {
			tags = append(tags, "#"+name)
			continue
		}
		if uid := cast.ToString(obj["userId"]); uid != "" {
			tags = append(tags, "@"+uid)
		}
	}
	return tags
}

// Account extracts the profile summary from the account node located by
// the scanner. A nil node yields the all-placeholder summary; missing
// individual fields degrade to placeholder text or nil counters, never to
// an error.
func Account(node map[string]any) model.AccountSummary {
	sum := model.AccountSummary{
		Handle:      model.Placeholder,
		DisplayName: model.Placeholder,
	}
	if node == nil {
		return sum
	}
	if author := objectAlias(node, authorObjAliases); author != nil {
		if h := stringAlias(author, handleAliases); h != "" {
			sum.Handle = h
		}
		if n := stringAlias(author, displayNameAliases); n != "" {
			sum.DisplayName = n
		}
	}
	if stats := objectAlias(node, authorStatsAliases); stats != nil {
		sum.Followers = optionalCounter(stats, followerAliases)
		sum.Following = optionalCounter(stats, followingAliases)
		sum.VideoCount = optionalCounter(stats, videoCountAliases)
		sum.TotalLikes = optionalCounter(stats, totalLikeAliases)
	}
	return sum
}

func objectAlias(node map[string]any, aliases []string) map[string]any {
	for _, key := range aliases {
		if obj, ok := node[key].(map[string]any); ok {
			return obj
		}
	}
	return nil
}

func stringAlias(node map[string]any, aliases []string) string {
	raw, ok := scanner.FirstPresent(node, aliases)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cast.ToString(raw))
}

func optionalCounter(stats map[string]any, aliases []string) *float64 {
	raw, ok := scanner.FirstPresent(stats, aliases)
	if !ok || raw == nil {
		return nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
