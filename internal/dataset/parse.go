package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nordpulse/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing the Date column. Slash dates
// are read month first; the day-first layout only matches what month first
// cannot (a first field above 12).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"02/01/2006",
	"02.01.2006",
}

// groupedNumber matches comma thousands grouping such as 1,250 or 12,345.50
var groupedNumber = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseNumericOrDefault parses a decimal value, returning def when the input is
// empty, malformed, not finite or negative. Commas are accepted only as
// thousands grouping, so a decimal comma such as "19,99" yields def.
func ParseNumericOrDefault(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if strings.Contains(s, ",") {
		if !groupedNumber.MatchString(s) {
			return def
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def
	}
	return v
}

// ParseDate parses a calendar date using the supported layouts.
// The result is truncated to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.TruncateToDay(t), true
		}
	}
	return time.Time{}, false
}

// normalizeComplaintField keeps the sentinel as is and rebuilds label lists
// without empty fragments. A field with no labels at all becomes the sentinel.
func normalizeComplaintField(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == domain.NoComplaintsSentinel {
		return domain.NoComplaintsSentinel
	}
	labels := domain.SplitComplaintLabels(s)
	if len(labels) == 0 {
		return domain.NoComplaintsSentinel
	}
	return strings.Join(labels, domain.ComplaintLabelSeparator)
}
