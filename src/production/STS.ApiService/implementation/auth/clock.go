package auth

import "time"

// ClockLayout is the zero-padded UTC wire format every timestamp field
// uses: "YYYY-MM-DD HH:MM:SS". The format happens to sort lexically,
// but comparisons always go through ParseClock first.
const ClockLayout = "2006-01-02 15:04:05"

// NowClock returns the current instant as a wire clock string.
func NowClock() string {
	return time.Now().UTC().Format(ClockLayout)
}

// ParseClock reconstructs the absolute instant behind a wire clock
// string.
func ParseClock(s string) (time.Time, error) {
	return time.ParseInLocation(ClockLayout, s, time.UTC)
}
