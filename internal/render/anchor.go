package render

import (
	"strconv"
	"strings"
	"unicode"
)

const fallbackAnchor = "theme"

// AnchorFromTheme builds a GitHub-friendly fragment from a theme name.
// The result is never empty and only holds lowercase letters, digits and single hyphens.
func AnchorFromTheme(name string) string {
	var b strings.Builder
	lastHyphen := true // suppresses leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) {
				// letters with no lowercase mapping keep their case; drop them instead
				continue
			}
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	anchor := strings.TrimRight(b.String(), "-")
	if anchor == "" {
		return fallbackAnchor
	}
	return anchor
}

// anchorSet hands out anchors for headings in document order, suffixing repeats
// with -1, -2, ... the way GitHub numbers duplicate headings.
type anchorSet struct {
	seen map[string]int
}

func newAnchorSet() *anchorSet {
	return &anchorSet{seen: make(map[string]int)}
}

func (s *anchorSet) next(name string) string {
	base := AnchorFromTheme(name)
	n, ok := s.seen[base]
	s.seen[base] = n + 1
	if !ok {
		return base
	}
	candidate := base + "-" + strconv.Itoa(n)
	for {
		if _, taken := s.seen[candidate]; !taken {
			s.seen[candidate] = 1
			return candidate
		}
		n++
		s.seen[base] = n + 1
		candidate = base + "-" + strconv.Itoa(n)
	}
}
