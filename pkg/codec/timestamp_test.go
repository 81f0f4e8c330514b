package codec

import (
	"bytes"
	"math"
	"testing"
	"time"
)

func TestTicksFromTime(t *testing.T) {
	testCases := []struct {
		name string
		time time.Time
		want int64
	}{
		{
			name: "unix epoch",
			time: time.Unix(0, 0),
			want: TicksToUnixEpoch,
		},
		{
			name: "one second and 150ns past epoch truncates to ticks",
			time: time.Unix(1, 150),
			want: TicksToUnixEpoch + TicksPerSecond + 1,
		},
		{
			name: "year one",
			time: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "last tick",
			time: time.Date(9999, 12, 31, 23, 59, 59, 999999900, time.UTC),
			want: 3155378975999999999,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TicksFromTime(tc.time); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTimeFromTicks(t *testing.T) {
	t.Run("inverts TicksFromTime", func(t *testing.T) {
		times := []time.Time{
			time.Date(2024, 6, 22, 8, 30, 15, 123456700, time.UTC),
			time.Date(1969, 12, 31, 23, 59, 59, 500000000, time.UTC),
			time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(9999, 12, 31, 23, 59, 59, 999999900, time.UTC),
			time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(0, 12, 31, 23, 59, 59, 0, time.UTC),
		}
		for _, want := range times {
			got, ok := TimeFromTicks(TicksFromTime(want))
			if !ok {
				t.Fatalf("TimeFromTicks(%v) not representable", want)
			}
			if !got.Equal(want) {
				t.Errorf("got %v, want %v", got, want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Expected UTC, got %v", got.Location())
			}
		}
	})

	t.Run("extreme tick values", func(t *testing.T) {
		for _, ticks := range []int64{-1, MinTicks, math.MaxInt64} {
			if _, ok := TimeFromTicks(ticks); !ok {
				t.Errorf("Expected ticks %d to be representable", ticks)
			}
		}
	})

	t.Run("offset overflows", func(t *testing.T) {
		for _, ticks := range []int64{math.MinInt64, MinTicks - 1} {
			if _, ok := TimeFromTicks(ticks); ok {
				t.Errorf("Expected ticks %d to be unrepresentable", ticks)
			}
		}
	})
}

func TestReader_ReadTimestampFallback(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	w := NewWriter()
	w.WriteInt64(math.MinInt64)

	got, err := NewReader(bytes.NewReader(w.Bytes())).ReadTimestamp()
	if err != nil {
		t.Fatalf("ReadTimestamp failed: %v", err)
	}
	if !got.Equal(fixed) {
		t.Errorf("Expected fallback to current time %v, got %v", fixed, got)
	}
}

func TestTimestamp_RoundTrip(t *testing.T) {
	want := time.Date(2013, 2, 1, 16, 31, 34, 0, time.UTC)

	w := NewWriter()
	w.WriteTimestamp(want)

	got, err := NewReader(bytes.NewReader(w.Bytes())).ReadTimestamp()
	if err != nil {
		t.Fatalf("ReadTimestamp failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTimestamp_RoundTripBeyondYear9999(t *testing.T) {
	want := time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)

	w := NewWriter()
	w.WriteTimestamp(want)

	got, err := NewReader(bytes.NewReader(w.Bytes())).ReadTimestamp()
	if err != nil {
		t.Fatalf("ReadTimestamp failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
