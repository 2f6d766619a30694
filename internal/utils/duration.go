package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/constants"
)

// FormatHMS renders a duration as zero-padded hh:mm:ss text. Hours are not
// wrapped at 24, so cumulative totals keep growing past a day.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// ParseHMS parses hh:mm:ss duration text as written by FormatHMS.
func ParseHMS(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q: expected hh:mm:ss", s)
	}

	var segments [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("invalid duration %q: negative segment", s)
		}
		segments[i] = n
	}

	if segments[1] > 59 || segments[2] > 59 {
		return 0, fmt.Errorf("invalid duration %q: minutes and seconds must be 00-59", s)
	}

	return time.Duration(segments[0])*time.Hour +
		time.Duration(segments[1])*time.Minute +
		time.Duration(segments[2])*time.Second, nil
}

// FormatDate renders a calendar date (no time component).
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatTimestamp renders a session start/stop timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}
