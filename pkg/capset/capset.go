package capset

import (
	"sort"
	"strings"
)

// Normalize returns a sorted, deduplicated copy of caps with empty entries
// removed. The result is stable, so normalized sets compare with
// slices.Equal.
func Normalize(caps []string) []string {
	if len(caps) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(caps))
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Union merges any number of capability sets into one normalized set.
func Union(sets ...[]string) []string {
	var merged []string
	for _, s := range sets {
		merged = append(merged, s...)
	}
	return Normalize(merged)
}

// Has reports whether the set contains the capability.
func Has(caps []string, capability string) bool {
	if capability == "" {
		return false
	}
	for _, c := range caps {
		if c == capability {
			return true
		}
	}
	return false
}
