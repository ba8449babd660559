package helper

import "time"

// Clock produces timestamps in the configured local zone and converts them
// to and from the zone-naive form stored in the database.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	return NewClockFunc(loc, time.Now)
}

// NewClockFunc uses now instead of time.Now as the time source.
func NewClockFunc(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Naive converts t to local wall clock and drops the zone. The result carries
// time.UTC only as a neutral container for the wall clock fields.
func (c *Clock) Naive(t time.Time) time.Time {
	l := t.In(c.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC)
}

// FromNaive reads a stored wall clock value back as a local time.
func (c *Clock) FromNaive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.loc)
}

// TodayRange returns the naive bounds [start, end) of the current local day.
func (c *Clock) TodayRange() (time.Time, time.Time) {
	now := c.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// FormatHMS renders the local HH:MM:SS of t, "N/A" for the zero time.
func (c *Clock) FormatHMS(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(c.loc).Format(time.TimeOnly)
}
