package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Lisbon")
	if err != nil {
		panic(err)
	}
}

// the portal publishes dates in Portuguese local time, so all date
// parsing and run timestamps are anchored here rather than in the
// host's timezone.
func Now() time.Time {
	return time.Now().In(Location)
}

// DateLayout is the portal's calendar format (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// ParseDate parses a portal-formatted calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location)
}
