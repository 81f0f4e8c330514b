//go:build fuzz
// +build fuzz

package replay

import (
	"errors"
	"testing"

	"github.com/ssargent/osrkit/pkg/codec"
)

// FuzzDecodeEvents tests that arbitrary event text never panics and only
// fails with ErrParse
func FuzzDecodeEvents(f *testing.F) {
	f.Add("16|256.0|192.0|1,32|300.0|200.0|2,-12345|0|0|12345", uint8(0))
	f.Add("0|256|-500|0,0|256|-500|0,16|100.0|100.0|1", uint8(0))
	f.Add("16|320|0|1,", uint8(1))
	f.Add("16|256.5|0|1,", uint8(2))
	f.Add("16|5|0|0,", uint8(3))

	f.Fuzz(func(t *testing.T, data string, mode uint8) {
		events, _, err := DecodeEvents(data, GameModeFromByte(mode))
		if err != nil {
			if !errors.Is(err, codec.ErrParse) {
				t.Fatalf("Unclassified error: %v", err)
			}
			return
		}
		for i, e := range events {
			if e.Mode() != GameModeFromByte(mode) {
				t.Fatalf("Event %d has mode %s", i, e.Mode())
			}
		}
	})
}

// FuzzCodec_Decode tests that arbitrary records never panic
func FuzzCodec_Decode(f *testing.F) {
	c := NewCodec()
	seed, err := c.Encode(&Replay{Username: "peppy", Events: []ReplayEvent{EventOsu{TimeDelta: 16}}})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		r, err := c.Decode(data)
		if err != nil {
			return
		}
		if _, err := c.Encode(r); err != nil {
			t.Fatalf("Decoded replay does not re-encode: %v", err)
		}
	})
}
