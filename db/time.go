package db

import "time"

// TimeFormat renders a timestamp the way the store persists it: RFC3339 in UTC.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses a stored RFC3339 timestamp. The zero time is represented
// by the empty string.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
