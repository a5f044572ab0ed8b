package remixer

import (
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\d+\.\s`)

// ParseNumberedItems extracts the entries of a numbered list from raw model
// output: lines are trimmed, lines not matching "N. " are dropped, and the
// numbering prefix is stripped. The derivation is lossy and order-preserving;
// RemixedText stays the source of truth.
func ParseNumberedItems(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		prefix := numberedLine.FindString(line)
		if prefix == "" {
			continue
		}
		items = append(items, strings.TrimSpace(line[len(prefix):]))
	}
	return items
}
