package kakuyomu

import "strings"

// Default result limits per entity kind.
const (
	DefaultWorkLimit    = 10
	DefaultEpisodeLimit = 20
	DefaultRankingLimit = 10
)

// KeyPredicate reports whether a state graph key belongs to an entity kind.
type KeyPredicate func(key string) bool

// HasPrefix returns a predicate matching keys that begin with prefix.
func HasPrefix(prefix string) KeyPredicate {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// Work key predicates. ListingWork is deliberately broader than SearchWork:
// the top page graph only carries work records under "Work" keys, while
// search result graphs also carry connection objects whose keys start with
// "Work" but are not works.
var (
	ListingWork = HasPrefix("Work")
	SearchWork  = HasPrefix("Work:")
)

// Episode matches episode keys in every graph.
var Episode = HasPrefix("Episode:")

// Limit returns limit, or def when limit is not positive.
func Limit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// Select returns the keys of g matching match, in graph order, truncated to
// limit after filtering. A non-positive limit falls back to defaultLimit.
func Select(g *StateGraph, match KeyPredicate, limit, defaultLimit int) []string {
	limit = Limit(limit, defaultLimit)
	var keys []string
	for _, key := range g.keys {
		if len(keys) == limit {
			break
		}
		if match(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
