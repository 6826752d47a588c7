// Package clock provides the calendar and time-of-day helpers used for scheduling quizzes
// and deciding when a learner may be notified.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const minutesPerDay = 24 * 60

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// Clock abstracts the current time so that schedules can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns a Clock backed by time.Now.
func Real() Clock { return realClock{} }

// Fake is a settable Clock for tests and dry runs.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// ParseHHMM parses a wall-clock "HH:MM" into minutes since midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: expected HH:MM, got %q", ErrInvalidTimeOfDay, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: hour in %q", ErrInvalidTimeOfDay, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: minute in %q", ErrInvalidTimeOfDay, s)
	}
	return h*60 + m, nil
}

// FormatMinutes returns HH:MM for minutes since midnight.
func FormatMinutes(mins int) string {
	mins = ((mins % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// MinutesSinceMidnight returns the wall-clock minute of t in loc. Seconds are truncated.
func MinutesSinceMidnight(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// MinuteDistance is the shortest distance between two minutes-of-day, going around midnight.
func MinuteDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	d %= minutesPerDay
	if minutesPerDay-d < d {
		return minutesPerDay - d
	}
	return d
}

// WithinTolerance reports whether now, read as a wall clock in loc, is within tolerance of
// the preferred HH:MM. Both bounds are inclusive.
func WithinTolerance(now time.Time, preferred string, tolerance time.Duration, loc *time.Location) (bool, error) {
	target, err := ParseHHMM(preferred)
	if err != nil {
		return false, err
	}
	tol := int(tolerance / time.Minute)
	return MinuteDistance(MinutesSinceMidnight(now, loc), target) <= tol, nil
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last nanosecond of the local day containing t.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Day returns the local calendar day of t as a date at UTC midnight, suitable for DATE columns.
func Day(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// Range is a closed interval [From, To].
type Range struct {
	From time.Time
	To   time.Time
}

// Around returns [center-window, center+window].
func Around(center time.Time, window time.Duration) Range {
	return Range{From: center.Add(-window), To: center.Add(window)}
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
