package util

import "time"

// ISOTimeLayout matches JavaScript's Date.toISOString: UTC, millisecond precision.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var processStart = time.Now()

// ProcessStart returns the time the process came up.
func ProcessStart() time.Time {
	return processStart
}

// Uptime returns seconds elapsed since process start.
// It is read from the monotonic clock so it never goes backwards.
func Uptime() float64 {
	return time.Since(processStart).Seconds()
}

// ISOTimestamp formats t in UTC as e.g. 2025-01-15T14:30:00.123Z
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

// NowISO is ISOTimestamp of the current time
func NowISO() string {
	return ISOTimestamp(time.Now())
}
