package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data))
}

func TestReader_FixedWidth(t *testing.T) {
	data := []byte{
		0x07,       // uint8
		0x34, 0x12, // uint16
		0x78, 0x56, 0x34, 0x12, // uint32
		0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // int64 -2
	}
	r := newTestReader(data)

	b, err := r.ReadUint8()
	if err != nil || b != 0x07 {
		t.Fatalf("ReadUint8 = %d, %v", b, err)
	}

	s, err := r.ReadUint16()
	if err != nil || s != 0x1234 {
		t.Fatalf("ReadUint16 = %#x, %v", s, err)
	}

	i, err := r.ReadUint32()
	if err != nil || i != 0x12345678 {
		t.Fatalf("ReadUint32 = %#x, %v", i, err)
	}

	l, err := r.ReadInt64()
	if err != nil || l != -2 {
		t.Fatalf("ReadInt64 = %d, %v", l, err)
	}

	if _, err := r.ReadUint8(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Expected ErrUnexpectedEOF at end of data, got %v", err)
	}
}

func TestReader_FailedReadConsumesNothing(t *testing.T) {
	// Only 4 bytes: the 8-byte read must fail and leave them for a 4-byte read.
	r := newTestReader([]byte{0x2A, 0x00, 0x00, 0x00})

	if _, err := r.ReadInt64(); err == nil {
		t.Fatal("Expected ReadInt64 to fail on 4 bytes")
	} else {
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("Expected ErrUnexpectedEOF, got %v", err)
		}
		if !errors.Is(err, ErrIO) {
			t.Errorf("Expected ErrIO, got %v", err)
		}
	}

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 after failed ReadInt64: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
}

func TestReader_ULEB128(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint64
	}{
		{name: "zero", data: []byte{0x00}, want: 0},
		{name: "one byte max", data: []byte{0x7F}, want: 127},
		{name: "two bytes", data: []byte{0x80, 0x01}, want: 128},
		{name: "300", data: []byte{0xAC, 0x02}, want: 300},
		{name: "624485", data: []byte{0xE5, 0x8E, 0x26}, want: 624485},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := newTestReader(tc.data).ReadULEB128()
			if err != nil {
				t.Fatalf("ReadULEB128 failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReader_ULEB128Overflow(t *testing.T) {
	// Ten continuation bytes push the shift to 70 without terminating.
	data := bytes.Repeat([]byte{0xFF}, 10)
	_, err := newTestReader(data).ReadULEB128()
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestReader_ULEB128Truncated(t *testing.T) {
	_, err := newTestReader([]byte{0x80, 0x80}).ReadULEB128()
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReader_String(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s, ok, err := newTestReader([]byte{0x0b, 0x05, 'H', 'e', 'l', 'l', 'o'}).ReadString()
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		if !ok || s != "Hello" {
			t.Errorf("got (%q, %t), want (\"Hello\", true)", s, ok)
		}
	})

	t.Run("absent", func(t *testing.T) {
		s, ok, err := newTestReader([]byte{0x00}).ReadString()
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		if ok || s != "" {
			t.Errorf("got (%q, %t), want (\"\", false)", s, ok)
		}
	})

	t.Run("present but empty", func(t *testing.T) {
		s, ok, err := newTestReader([]byte{0x0b, 0x00}).ReadString()
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		if !ok || s != "" {
			t.Errorf("got (%q, %t), want (\"\", true)", s, ok)
		}
	})

	t.Run("long string uses multi-byte length", func(t *testing.T) {
		long := strings.Repeat("a", 300)
		data := append([]byte{0x0b, 0xAC, 0x02}, long...)
		s, _, err := newTestReader(data).ReadString()
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		if s != long {
			t.Errorf("got %d bytes, want 300", len(s))
		}
	})
}

func TestReader_StringInvalidMarker(t *testing.T) {
	_, _, err := newTestReader([]byte{0xFF, 0x00}).ReadString()
	if err == nil {
		t.Fatal("Expected error for marker 0xFF")
	}

	var markerErr *InvalidStringMarkerError
	if !errors.As(err, &markerErr) {
		t.Fatalf("Expected *InvalidStringMarkerError, got %T: %v", err, err)
	}
	if markerErr.Marker != 0xFF {
		t.Errorf("Expected marker 0xff, got %#x", markerErr.Marker)
	}
	if !errors.Is(err, ErrInvalidStringMarker) {
		t.Error("Expected errors.Is(err, ErrInvalidStringMarker)")
	}
	if !strings.Contains(err.Error(), "0xff") {
		t.Errorf("Expected message to carry the marker, got %q", err.Error())
	}
}

func TestReader_StringInvalidUTF8(t *testing.T) {
	data := []byte{0x0b, 0x04, 0xFF, 0xFE, 0xFD, 0xFC}
	_, _, err := newTestReader(data).ReadString()
	if !errors.Is(err, ErrUTF8) {
		t.Fatalf("Expected ErrUTF8, got %v", err)
	}
}

func TestReader_StringTruncated(t *testing.T) {
	// Declares 10 bytes, provides 3.
	data := []byte{0x0b, 0x0A, 'a', 'b', 'c'}
	_, _, err := newTestReader(data).ReadString()
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReader_ReadBytesForgedLength(t *testing.T) {
	_, err := newTestReader([]byte{1, 2, 3}).ReadBytes(1 << 40)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
}
