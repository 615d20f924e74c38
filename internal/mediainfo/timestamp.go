package mediainfo

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout renders as "2018-03-13 16:20:49 UTC".
const TimestampLayout = "2006-01-02 15:04:05 MST"

// ErrInvalidTimestamp marks a timestamp the platform could not supply or that
// falls outside the displayable range.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Timestamp is a normalized file time or the reason it is unavailable.
type Timestamp struct {
	Time time.Time
	Err  error
}

// NormalizeTimestamp converts seconds since the Unix epoch into a UTC
// timestamp. A nil seconds value means the platform has no such time.
func NormalizeTimestamp(kind string, seconds *int64) Timestamp {
	if seconds == nil {
		return Timestamp{Err: fmt.Errorf("%w: %s time not supported on this platform", ErrInvalidTimestamp, kind)}
	}
	t := time.Unix(*seconds, 0).UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		return Timestamp{Err: fmt.Errorf("%w: %s time %d out of range", ErrInvalidTimestamp, kind, *seconds)}
	}
	return Timestamp{Time: t}
}

// String returns the display form, or an error marker.
func (ts Timestamp) String() string {
	if ts.Err != nil {
		return "error: " + ts.Err.Error()
	}
	return ts.Time.Format(TimestampLayout)
}
