package server

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher decides which directory entries are gallery images
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles include patterns. Patterns and names are compared lower-cased.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether name is an image to list
func (m *Matcher) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range m.globs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}
