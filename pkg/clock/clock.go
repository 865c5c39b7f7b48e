package clock

import "time"

// All visitor bucketing is done on the KST (UTC+9) calendar, regardless
// of server timezone or anything the client sends.
var Location = time.FixedZone("KST", 9*60*60)

// Clock supplies "now" in the fixed civil timezone. Injectable so that
// bucket-boundary behavior can be tested at exact instants.
type Clock interface {
	Now() time.Time
}

type fixedZoneClock struct{}

func New() Clock {
	return fixedZoneClock{}
}

func (fixedZoneClock) Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay returns midnight of t's calendar date in the fixed zone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// StartOfWeek returns midnight of the Monday of t's week in the fixed zone.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the 1st of t's month in the fixed zone.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Location)
}
