package ledger

import "time"

// =============================================================================
// RANGE - Inclusive date range with optional bounds
// =============================================================================

// Range is an inclusive [Start, End] date range. A nil bound means
// unbounded on that side.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// NewRange builds a bounded range.
func NewRange(start, end time.Time) Range {
	return Range{Start: &start, End: &end}
}

// Before builds a range unbounded below that ends strictly before t.
// Used for cumulative "everything up to" sums (beginning cash).
func Before(t time.Time) Range {
	end := t.Add(-time.Millisecond)
	return Range{End: &end}
}

// UpTo builds a range unbounded below that ends at t (inclusive).
func UpTo(t time.Time) Range {
	return Range{End: &t}
}

// Unbounded matches every record, including ones with no parseable date.
func Unbounded() Range { return Range{} }

// YearRange covers [Jan 1, Dec 31] of a calendar year.
func YearRange(year int) Range {
	return NewRange(
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 23, 59, 59, 999000000, time.UTC),
	)
}

// MonthRange covers the calendar month containing t.
func MonthRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return NewRange(start, end)
}

// TrailingYear covers the 12 months ending at t.
func TrailingYear(t time.Time) Range {
	return NewRange(t.AddDate(-1, 0, 0), t)
}

// Bounded reports whether the range has at least one bound.
func (r Range) Bounded() bool { return r.Start != nil || r.End != nil }

// Contains reports whether t falls inside the range, bounds inclusive.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Valid reports whether the bounds are ordered (or absent).
func (r Range) Valid() bool {
	if r.Start == nil || r.End == nil {
		return true
	}
	return !r.Start.After(*r.End)
}

// Previous returns the immediately preceding range of identical length:
// previous end is one millisecond before Start, previous start preserves
// the length. Requires both bounds; ok is false otherwise.
func (r Range) Previous() (Range, bool) {
	if r.Start == nil || r.End == nil {
		return Range{}, false
	}
	length := r.End.Sub(*r.Start)
	prevEnd := r.Start.Add(-time.Millisecond)
	prevStart := prevEnd.Add(-length)
	return NewRange(prevStart, prevEnd), true
}

// =============================================================================
// DATE PARSING - Tolerant input, strict fallback
// =============================================================================

// dateLayouts are accepted in order. The loader emits ISO dates but
// upstream systems have historically stored full timestamps too.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate parses a date string in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// WithinRange reports whether a record's date string falls inside the
// range. Missing or unparsable dates fail closed: they match only a
// fully unbounded range. Better to under-count than to double-count a
// financial record with an ambiguous date.
func WithinRange(dateStr string, r Range) bool {
	t, ok := ParseDate(dateStr)
	if !ok {
		return !r.Bounded()
	}
	return r.Contains(t)
}

// FormatDate renders a time as the ISO date used in all documents.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }
