// Package scanner locates post and account records inside an arbitrary,
// already-parsed TikTok profile-export document. The export format is
// undocumented and drifts between app versions, so nothing here assumes a
// fixed schema: records are recognized by shape, wherever they sit in the
// tree, and all field access is driven by alias tables rather than
// hardcoded keys.
package scanner

import "sort"

// Alias tables. Extend these when a new export version renames a field;
// traversal logic never needs to change.
var (
	statsKeys   = []string{"stats", "statsV2"}
	accountKeys = []string{"author", "authorStats", "authorStatsV2"}
)

const playCountKey = "playCount"

// FirstPresent returns the value of the first alias present on the node.
func FirstPresent(node map[string]any, aliases []string) (any, bool) {
	if node == nil {
		return nil, false
	}
	for _, key := range aliases {
		if v, ok := node[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// IsPostNode reports whether the node carries a stats-like child object
// with a play count, the one shape shared by every post record observed
// across export versions.
func IsPostNode(node map[string]any) bool {
	for _, key := range statsKeys {
		if child, ok := node[key].(map[string]any); ok {
			if _, ok := child[playCountKey]; ok {
				return true
			}
		}
	}
	return false
}

// StatsObject returns the node's qualifying stats object: the first
// stats/statsV2 child containing a play count, falling back to the first
// stats-keyed object at all. Nil when the node has neither.
func StatsObject(node map[string]any) map[string]any {
	var fallback map[string]any
	for _, key := range statsKeys {
		child, ok := node[key].(map[string]any)
		if !ok {
			continue
		}
		if _, ok := child[playCountKey]; ok {
			return child
		}
		if fallback == nil {
			fallback = child
		}
	}
	return fallback
}

// FindPosts walks the whole document depth-first and collects every node
// that qualifies as a post, in discovery order. Traversal continues into a
// qualifying node's children, so a post that embeds another post-shaped
// object yields both; duplicates are deliberately not removed, matching
// how real exports are consumed. The walk uses an explicit stack, so
// adversarially deep documents cannot overflow the goroutine stack.
//
// Decoded JSON objects carry no key order, so object children are visited
// in sorted-key order to keep discovery order deterministic.
func FindPosts(doc any) []map[string]any {
	var posts []map[string]any
	stack := []any{doc}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := node.(type) {
		case []any:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		case map[string]any:
			if IsPostNode(v) {
				posts = append(posts, v)
			}
			keys := sortedKeys(v)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, v[keys[i]])
			}
		}
	}
	return posts
}

// FindAccountNode walks the document breadth-first and returns the first
// node carrying an author or author-stats property. The document may hold
// several account-like nodes; level order plus sorted-key order makes the
// winner deterministic. Returns nil when no such node exists.
func FindAccountNode(doc any) map[string]any {
	queue := []any{doc}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		switch v := node.(type) {
		case []any:
			queue = append(queue, v...)
		case map[string]any:
			if _, ok := FirstPresent(v, accountKeys); ok {
				return v
			}
			for _, key := range sortedKeys(v) {
				queue = append(queue, v[key])
			}
		}
	}
	return nil
}

func sortedKeys(node map[string]any) []string {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
