package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{
	".git",
	"node_modules",
	"vendor",
	".sidenav",
	".idea",
	".vscode",
}

// ShouldExcludeDir reports whether a directory name matches any default
// exclusion. This is used during traversal to skip entire subtrees.
func ShouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludeDirs {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return MatchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return MatchesAny(relPath, patterns)
}

// MatchesAny checks if relPath, or its base name, matches any of the given
// doublestar glob patterns.
func MatchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
