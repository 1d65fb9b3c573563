package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.jacobcolvin.com/viewlines/position"
)

// parseHiddenRanges parses a comma-separated list of 1-indexed line ranges
// such as "2-5,9" into whole-line [position.Range]s. A bare number hides a
// single line.
func parseHiddenRanges(s string) ([]position.Range, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var ranges []position.Range

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)

		from, to, found := strings.Cut(part, "-")
		if !found {
			to = from
		}

		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", part, err)
		}

		end, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", part, err)
		}

		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid range %q", part)
		}

		ranges = append(ranges, position.NewRange(
			position.New(start, 1),
			position.New(end, 1),
		))
	}

	return ranges, nil
}
