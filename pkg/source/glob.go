package source

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlobs expands a list of file paths and glob patterns into a
// deduplicated list of paths. Patterns keep the order they were given in;
// the matches of a single pattern are in lexical order. "**" matches any
// number of directories. Patterns that don't match any files are returned
// as-is so the caller reports them when opening.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == StdinName {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
