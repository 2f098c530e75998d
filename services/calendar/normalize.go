package calendar

import (
	"regexp"
	"time"
)

// rfc3339Prefix matches a timestamp that already carries a Z suffix or a
// ±HH:MM offset. Only the prefix is checked.
var rfc3339Prefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})`)

// fractionalSeconds spots input time.Parse would silently truncate against the
// second-precision layouts below.
var fractionalSeconds = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[.,]\d`)

// naiveLayouts are tried in order against strings without an offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// offsetLayout renders UTC as "+00:00" rather than "Z".
const offsetLayout = "2006-01-02T15:04:05-07:00"

// Normalized is the outcome of NormalizeTimestamp.
type Normalized struct {
	Value string
	// WasGuessed is set when no layout matched and Value is the input with a
	// bare "Z" appended. Value may not be a valid timestamp in that case.
	WasGuessed bool
}

// NormalizeTimestamp coerces s into an RFC3339 timestamp with an offset.
// Naive times are taken to be UTC. It never fails: unrecognised input is
// returned with "Z" appended and left for the calendar API to reject.
func NormalizeTimestamp(s string) Normalized {
	if rfc3339Prefix.MatchString(s) {
		return Normalized{Value: s}
	}
	if fractionalSeconds.MatchString(s) {
		return Normalized{Value: s + "Z", WasGuessed: true}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Normalized{Value: t.Format(offsetLayout)}
		}
	}
	return Normalized{Value: s + "Z", WasGuessed: true}
}

// Normalize is NormalizeTimestamp without the guess flag.
func Normalize(s string) string {
	return NormalizeTimestamp(s).Value
}
