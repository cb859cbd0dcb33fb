package utils

import (
	"math"
	"time"
)

// DayKeyLayout is the daily-volume bucket key format (yyyy-MM-dd).
const DayKeyLayout = "2006-01-02"

// GetCurrentTimeMillis returns current time in milliseconds since epoch
func GetCurrentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// MillisToTime converts milliseconds since epoch to time.Time
func MillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}

// TimeToMillis converts time.Time to milliseconds since epoch
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses an ISO 8601 timestamp, accepting a bare yyyy-MM-dd date
// as midnight UTC.
func ParseTime(timeStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err == nil {
		return t, nil
	}
	return time.Parse(DayKeyLayout, timeStr)
}

// DayKey returns the daily-volume bucket key for t (yyyy-MM-dd).
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// RoundTo rounds value to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
