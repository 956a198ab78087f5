package probe

import "regexp"

// Match reports whether re occurs anywhere in content. The search is
// unanchored — any occurrence counts. Empty content is never a match,
// whatever the pattern.
func Match(re *regexp.Regexp, content []byte) bool {
	if len(content) == 0 {
		return false
	}
	return re.Match(content)
}
