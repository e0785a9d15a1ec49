package assess

import "strings"

// copyThreshold is the longest run of characters a summary may share
// with its source text before it counts as copied rather than summarized.
const copyThreshold = 20

// isCopied reports whether the summary lifts a run longer than
// copyThreshold straight from the source text. Comparison is
// case-insensitive.
func isCopied(text, summary string) bool {
	return longestCommonSubstring(strings.ToLower(text), strings.ToLower(summary)) > copyThreshold
}

// longestCommonSubstring returns the length in bytes of the longest
// contiguous substring shared by a and b. Classic two-row dynamic
// programming, O(len(a)*len(b)) time and O(len(b)) space.
func longestCommonSubstring(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}
