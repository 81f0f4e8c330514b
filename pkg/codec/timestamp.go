package codec

import (
	"math"
	"time"
)

const (
	// TicksToUnixEpoch is the number of 100ns ticks between 0001-01-01 and
	// the Unix epoch.
	TicksToUnixEpoch int64 = 621355968000000000
	// TicksPerSecond is the tick resolution
	TicksPerSecond int64 = 10_000_000
	// MinTicks is the smallest tick value whose offset from the Unix epoch
	// fits in an int64. Every tick value from MinTicks up maps to a time.Time.
	MinTicks int64 = math.MinInt64 + TicksToUnixEpoch
)

// now is replaced in tests
var now = time.Now

// TicksFromTime converts t to 100ns ticks. Sub-tick precision is truncated.
func TicksFromTime(t time.Time) int64 {
	return TicksToUnixEpoch + t.Unix()*TicksPerSecond + int64(t.Nanosecond())/100
}

// TimeFromTicks converts ticks to a UTC time. ok is false when the instant
// cannot be represented, which only happens below MinTicks.
func TimeFromTicks(ticks int64) (t time.Time, ok bool) {
	if ticks < MinTicks {
		return time.Time{}, false
	}
	d := ticks - TicksToUnixEpoch
	sec, rem := d/TicksPerSecond, d%TicksPerSecond
	if rem < 0 {
		sec--
		rem += TicksPerSecond
	}
	return time.Unix(sec, rem*100).UTC(), true
}

// ReadTimestamp reads a tick timestamp. An unrepresentable value decodes as
// the current time instead of failing.
//
// TODO: surface unrepresentable timestamps as ErrInvalidFormat behind an
// option for callers that cannot tolerate the substitution.
func (r *Reader) ReadTimestamp() (time.Time, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	t, ok := TimeFromTicks(ticks)
	if !ok {
		return now().UTC(), nil
	}
	return t, nil
}

// WriteTimestamp appends t as a tick timestamp
func (w *Writer) WriteTimestamp(t time.Time) {
	w.WriteInt64(TicksFromTime(t))
}
