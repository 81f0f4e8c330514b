package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestWriter_FixedWidth(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0x07)
	w.WriteUint16(0x1234)
	w.WriteUint32(0x12345678)
	w.WriteInt64(-2)
	w.WriteBool(true)
	w.WriteBool(false)

	want := []byte{
		0x07,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x01,
		0x00,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got %x, want %x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len = %d, want %d", w.Len(), len(want))
	}
}

func TestWriter_ULEB128(t *testing.T) {
	testCases := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{624485, []byte{0xE5, 0x8E, 0x26}},
	}

	for _, tc := range testCases {
		w := NewWriter()
		w.WriteULEB128(tc.value)
		if !bytes.Equal(w.Bytes(), tc.want) {
			t.Errorf("WriteULEB128(%d) = %x, want %x", tc.value, w.Bytes(), tc.want)
		}
	}
}

func TestWriter_String(t *testing.T) {
	t.Run("empty writes absent marker", func(t *testing.T) {
		w := NewWriter()
		w.WriteString("")
		if !bytes.Equal(w.Bytes(), []byte{0x00}) {
			t.Errorf("got %x, want 00", w.Bytes())
		}
	})

	t.Run("present", func(t *testing.T) {
		w := NewWriter()
		w.WriteString("Hello")
		want := []byte{0x0b, 0x05, 'H', 'e', 'l', 'l', 'o'}
		if !bytes.Equal(w.Bytes(), want) {
			t.Errorf("got %x, want %x", w.Bytes(), want)
		}
	})
}

func TestPrimitives_RoundTrip(t *testing.T) {
	strs := []string{"x", "cookiezi", "🎯 unicode with émojis", strings.Repeat("k", 1024)}
	ulebs := []uint64{0, 1, 127, 128, 16383, 16384, math.MaxUint32, math.MaxUint64}

	w := NewWriter()
	for _, s := range strs {
		w.WriteString(s)
	}
	for _, v := range ulebs {
		w.WriteULEB128(v)
	}
	w.WriteInt64(math.MinInt64)
	w.WriteInt64(math.MaxInt64)

	var out bytes.Buffer
	if _, err := w.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	r := NewReader(&out)
	for _, want := range strs {
		got, ok, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		if !ok || got != want {
			t.Errorf("string mismatch: got %q, want %q", got, want)
		}
	}
	for _, want := range ulebs {
		got, err := r.ReadULEB128()
		if err != nil {
			t.Fatalf("ReadULEB128 failed: %v", err)
		}
		if got != want {
			t.Errorf("uleb128 mismatch: got %d, want %d", got, want)
		}
	}
	for _, want := range []int64{math.MinInt64, math.MaxInt64} {
		got, err := r.ReadInt64()
		if err != nil {
			t.Fatalf("ReadInt64 failed: %v", err)
		}
		if got != want {
			t.Errorf("int64 mismatch: got %d, want %d", got, want)
		}
	}
}
