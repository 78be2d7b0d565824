package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRange malformed or inverted custom date bounds
var ErrInvalidRange = errors.New("invalid date range")

// RangeName named dashboard range
type RangeName string

const (
	RangeLast7     RangeName = "last7"
	RangeLast14    RangeName = "last14"
	RangeLast28    RangeName = "last28"
	RangeLast30    RangeName = "last30"
	RangeLast90    RangeName = "last90"
	RangeLastMonth RangeName = "lastMonth"
	RangeCustom    RangeName = "custom"
)

var rangeDays = map[RangeName]int{
	RangeLast7:  7,
	RangeLast14: 14,
	RangeLast28: 28,
	RangeLast30: 30,
	RangeLast90: 90,
}

// DateRange inclusive on both ends
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Days number of calendar days covered by the range.
func (r DateRange) Days() int {
	from := StartOfDay(r.From)
	to := StartOfDay(r.To)
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		n++
		if n > MaxBuckets {
			break
		}
	}
	return n
}

// StartOfDay midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ResolveRange turns a named range into concrete bounds relative to now.
// Custom bounds accept YYYY-MM-DD or RFC3339 and are interpreted in now's location.
func ResolveRange(name RangeName, customFrom, customTo string, now time.Time) (DateRange, error) {
	if name == "" {
		name = RangeLast7
	}

	if name == RangeCustom {
		if strings.TrimSpace(customFrom) == "" || strings.TrimSpace(customTo) == "" {
			return lastNDays(now, rangeDays[RangeLast7]), nil
		}
		from, err := parseBound(customFrom, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: from %q", ErrInvalidRange, customFrom)
		}
		to, err := parseBound(customTo, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: to %q", ErrInvalidRange, customTo)
		}
		r := DateRange{From: StartOfDay(from), To: EndOfDay(to)}
		if r.From.After(r.To) {
			return DateRange{}, fmt.Errorf("%w: from %s is after to %s",
				ErrInvalidRange, r.From.Format(time.DateOnly), r.To.Format(time.DateOnly))
		}
		if r.Days() > MaxBuckets {
			return DateRange{}, fmt.Errorf("%w: range longer than %d days", ErrInvalidRange, MaxBuckets)
		}
		return r, nil
	}

	if name == RangeLastMonth {
		firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from := firstOfThisMonth.AddDate(0, -1, 0)
		return DateRange{From: from, To: firstOfThisMonth.Add(-time.Nanosecond)}, nil
	}

	days, ok := rangeDays[name]
	if !ok {
		return DateRange{}, fmt.Errorf("%w: unknown range %q", ErrInvalidRange, name)
	}
	return lastNDays(now, days), nil
}

func lastNDays(now time.Time, n int) DateRange {
	to := EndOfDay(now)
	from := StartOfDay(now).AddDate(0, 0, -(n - 1))
	return DateRange{From: from, To: to}
}

func parseBound(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}
