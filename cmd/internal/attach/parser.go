package attach

import (
	"errors"
	"fmt"
	"strings"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

// StatsMarker is the first line of a vendor statistics comment.
const StatsMarker = "TradeDesk API stats:"

const statsLines = 3

var ErrMalformedStats = errors.New("malformed stats comment")

// ExtractStats returns the record from the first comment whose first line is
// StatsMarker, or nil if no comment carries the marker. A marker comment
// without two "name:value" lines after it yields ErrMalformedStats and the
// scan stops there.
func ExtractStats(comments []types.Comment) (*types.StatsRecord, error) {
	for _, c := range comments {
		lines := strings.Split(c.Body, "\n")
		if lines[0] != StatsMarker {
			continue
		}

		if len(lines) < statsLines {
			return nil, fmt.Errorf("%w: comment %s has %d line(s)", ErrMalformedStats, c.ID, len(lines))
		}

		metrics := make(map[string]string, statsLines-1)
		for _, line := range lines[1:statsLines] {
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				return nil, fmt.Errorf("%w: comment %s line %q has no ':'", ErrMalformedStats, c.ID, line)
			}
			metrics[name] = value
		}

		return &types.StatsRecord{Raw: c.Body, Metrics: metrics}, nil
	}

	return nil, nil
}
