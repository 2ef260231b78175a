package model

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	// TimestampLayout matches the ISO strings the dashboard has always stored (millisecond precision, UTC).
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp. Empty or malformed input yields
// the Unix epoch, which is how records without createdAt have always been treated.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
