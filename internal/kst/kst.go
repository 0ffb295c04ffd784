// Package kst normalizes the heterogeneous timestamp encodings coming out of
// the channel import pipelines into a single KST wall-clock representation.
package kst

import (
	"log/slog"
	"strings"
	"time"
)

// kst is UTC+9 with no daylight saving.
var kst = time.FixedZone("KST", 9*60*60)

// Location returns the KST timezone.
func Location() *time.Location {
	return kst
}

// Normalize converts a raw order timestamp (string or time.Time) into KST
// wall-clock time. It never fails: unparseable input falls back to the current
// time with a warning, so one malformed record shifts into "today" instead of
// taking the whole report down.
func Normalize(v any) time.Time {
	t, ok := Parse(v)
	if !ok {
		slog.Default().Warn("unparseable order date, falling back to now",
			slog.Any("value", v),
		)
		return time.Now().In(kst)
	}
	return t
}

// Parse is the tagged form of Normalize: ok is false when the input could not
// be interpreted and the caller would receive the fallback.
func Parse(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x, true
	case string:
		return parseString(x)
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	switch {
	// The importer stores KST wall-clock values mislabeled as +00:00. Re-add
	// the nine hours that are effectively baked in. Downstream data depends on
	// this compensation; do not "fix" it.
	case strings.Contains(s, "+00:00"):
		t, err := parseLayouts(s, time.RFC3339Nano, time.RFC3339)
		if err != nil {
			return time.Time{}, false
		}
		return shiftToKST(t.UTC()), true

	// Naive timestamp without offset: already KST wall clock.
	case strings.Contains(s, "T") && !strings.Contains(s, "Z") && !strings.Contains(s, "+"):
		t, err := parseInKST(s, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05")
		if err != nil {
			return time.Time{}, false
		}
		return t, true

	// True UTC instant: add nine hours to obtain the KST wall clock.
	case strings.Contains(s, "T") && strings.Contains(s, "Z"):
		t, err := parseLayouts(s, time.RFC3339Nano, time.RFC3339)
		if err != nil {
			return time.Time{}, false
		}
		return shiftToKST(t.UTC()), true

	default:
		t, err := parseInKST(s,
			"2006-01-02 15:04:05",
			"2006-01-02",
			"2006/01/02",
			"2006.01.02",
		)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// shiftToKST adds nine hours to the UTC wall clock of t and rebuilds the
// result as a KST wall-clock time.
func shiftToKST(t time.Time) time.Time {
	u := t.Add(9 * time.Hour)
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), kst)
}

func parseLayouts(s string, layouts ...string) (time.Time, error) {
	var err error
	for _, l := range layouts {
		var t time.Time
		if t, err = time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func parseInKST(s string, layouts ...string) (time.Time, error) {
	var err error
	for _, l := range layouts {
		var t time.Time
		if t, err = time.ParseInLocation(l, s, kst); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
