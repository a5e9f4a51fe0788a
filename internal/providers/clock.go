package providers

import "time"

// LocalTime returns the current wall-clock time (HH:MM) in the given IANA
// timezone, or "--:--" when the zone is unknown.
func LocalTime(tz string) string {
	if tz == "" {
		return "--:--"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "--:--"
	}
	return time.Now().In(loc).Format("15:04")
}
