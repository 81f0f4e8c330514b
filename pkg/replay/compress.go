package replay

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ulikunitz/xz/lzma"

	"github.com/ssargent/osrkit/pkg/codec"
)

const (
	// DefaultPreset is the compression preset used when none is given
	DefaultPreset = 6
	// MaxPreset is the strongest compression preset
	MaxPreset = 9
)

// presetDictCaps maps presets 0-9 to LZMA dictionary capacities, following
// the xz preset table.
var presetDictCaps = [MaxPreset + 1]int{
	256 << 10,
	1 << 20,
	2 << 20,
	4 << 20,
	4 << 20,
	8 << 20,
	8 << 20,
	16 << 20,
	32 << 20,
	maxDictCap,
}

// compress wraps data in an lzma-alone stream
func compress(data []byte, preset int) ([]byte, error) {
	if preset < 0 || preset > MaxPreset {
		return nil, fmt.Errorf("%w: preset %d out of range 0-%d", codec.ErrCompression, preset, MaxPreset)
	}

	cfg := lzma.WriterConfig{DictCap: presetDictCaps[preset]}
	if len(data) > 0 {
		cfg.SizeInHeader = true
		cfg.Size = int64(len(data))
	} else {
		// A zero size in the header reads back as unknown, so an empty
		// stream must be terminated by an end marker instead.
		cfg.EOSMarker = true
	}

	var buf bytes.Buffer
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCompression, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCompression, err)
	}
	return buf.Bytes(), nil
}

// maxDictCap bounds the dictionary a stream header may ask for. The
// decoder allocates the whole dictionary up front.
const maxDictCap = 64 << 20

// decompress inflates an lzma-alone stream
func decompress(data []byte) ([]byte, error) {
	if len(data) >= 5 {
		if dictCap := binary.LittleEndian.Uint32(data[1:5]); dictCap > maxDictCap {
			return nil, fmt.Errorf("%w: dictionary size %d exceeds %d", codec.ErrCompression, dictCap, maxDictCap)
		}
	}
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCompression, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCompression, err)
	}
	return out, nil
}

// readBlock reads a u32 length followed by exactly that many bytes
func readBlock(r *codec.Reader) ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("event block length: %w", err)
	}
	data, err := r.ReadBytes(uint64(n))
	if err != nil {
		return nil, fmt.Errorf("event block: %w", err)
	}
	return data, nil
}

func writeBlock(w *codec.Writer, data []byte) {
	w.WriteUint32(uint32(len(data)))
	w.WriteBytes(data)
}

func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: event stream of %d bytes", codec.ErrUTF8, len(data))
	}
	return string(data), nil
}
