package replay

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ssargent/osrkit/pkg/codec"
)

// Codec encodes and decodes complete .osr records
type Codec struct {
	preset int
}

// Option configures a Codec
type Option func(*Codec)

// WithPreset sets the LZMA compression preset (0-9) used on encode
func WithPreset(preset int) Option {
	return func(c *Codec) {
		c.preset = preset
	}
}

// NewCodec creates a new replay codec instance
func NewCodec(opts ...Option) *Codec {
	c := &Codec{preset: DefaultPreset}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preset returns the compression preset used on encode
func (c *Codec) Preset() int {
	return c.preset
}

// Encode serializes a replay into the .osr format
func (c *Codec) Encode(r *Replay) ([]byte, error) {
	return c.encode(r, true)
}

// EncodeUncompressed serializes a replay with the event block stored as
// length-prefixed plain text instead of LZMA. This is a diagnostic form
// only: Decode rejects it, use DecodeUncompressed to read it back.
func (c *Codec) EncodeUncompressed(r *Replay) ([]byte, error) {
	return c.encode(r, false)
}

// EncodeTo writes the .osr encoding of r to w
func (c *Codec) EncodeTo(w io.Writer, r *Replay) error {
	data, err := c.Encode(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return codec.IOError("write replay", err)
	}
	return nil
}

func (c *Codec) encode(r *Replay, compressed bool) ([]byte, error) {
	if err := checkEvents(r); err != nil {
		return nil, err
	}

	w := codec.NewWriter()
	w.WriteUint8(uint8(r.Mode))
	w.WriteUint32(r.GameVersion)
	w.WriteString(r.BeatmapHash)
	w.WriteString(r.Username)
	w.WriteString(r.ReplayHash)
	w.WriteUint16(r.Count300)
	w.WriteUint16(r.Count100)
	w.WriteUint16(r.Count50)
	w.WriteUint16(r.CountGeki)
	w.WriteUint16(r.CountKatu)
	w.WriteUint16(r.CountMiss)
	w.WriteUint32(r.Score)
	w.WriteUint16(r.MaxCombo)
	w.WriteBool(r.Perfect)
	w.WriteUint32(uint32(r.Mods))
	w.WriteString(EncodeLifeBar(r.LifeBar))
	w.WriteTimestamp(r.Timestamp)

	events, err := EncodeEvents(r.Events, r.RNGSeed)
	if err != nil {
		return nil, err
	}
	block := []byte(events)
	if compressed {
		if block, err = compress(block, c.preset); err != nil {
			return nil, err
		}
	}
	writeBlock(w, block)

	w.WriteInt64(r.ReplayID)
	return w.Bytes(), nil
}

// checkEvents enforces that every frame matches the replay mode
func checkEvents(r *Replay) error {
	for i, e := range r.Events {
		if e == nil {
			return fmt.Errorf("%w: event %d is nil", codec.ErrInvalidFormat, i)
		}
		if e.Mode() != r.Mode {
			return fmt.Errorf("%w: event %d is a %s frame in a %s replay", codec.ErrInvalidFormat, i, e.Mode(), r.Mode)
		}
	}
	return nil
}

// Decode deserializes a .osr record
func (c *Codec) Decode(data []byte) (*Replay, error) {
	return c.DecodeFrom(bytes.NewReader(data))
}

// DecodeFrom reads a single .osr record from src
func (c *Codec) DecodeFrom(src io.Reader) (*Replay, error) {
	return c.decode(codec.NewReader(src), true)
}

// DecodeUncompressed reads the diagnostic form written by EncodeUncompressed
func (c *Codec) DecodeUncompressed(data []byte) (*Replay, error) {
	return c.decode(codec.NewReader(bytes.NewReader(data)), false)
}

func (c *Codec) decode(cr *codec.Reader, compressed bool) (*Replay, error) {
	r, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	block, err := readBlock(cr)
	if err != nil {
		return nil, err
	}
	if compressed {
		if block, err = decompress(block); err != nil {
			return nil, err
		}
	}
	text, err := decodeText(block)
	if err != nil {
		return nil, err
	}
	if r.Events, r.RNGSeed, err = DecodeEvents(text, r.Mode); err != nil {
		return nil, err
	}

	if r.ReplayID, err = readReplayID(cr); err != nil {
		return nil, err
	}
	return r, nil
}

// readHeader reads every field that precedes the event block
func readHeader(cr *codec.Reader) (*Replay, error) {
	var (
		r   Replay
		err error
	)

	mode, err := cr.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("mode: %w", err)
	}
	r.Mode = GameModeFromByte(mode)

	if r.GameVersion, err = cr.ReadUint32(); err != nil {
		return nil, fmt.Errorf("game version: %w", err)
	}
	if r.BeatmapHash, _, err = cr.ReadString(); err != nil {
		return nil, fmt.Errorf("beatmap hash: %w", err)
	}
	if r.Username, _, err = cr.ReadString(); err != nil {
		return nil, fmt.Errorf("username: %w", err)
	}
	if r.ReplayHash, _, err = cr.ReadString(); err != nil {
		return nil, fmt.Errorf("replay hash: %w", err)
	}

	counts := []*uint16{&r.Count300, &r.Count100, &r.Count50, &r.CountGeki, &r.CountKatu, &r.CountMiss}
	for _, c := range counts {
		if *c, err = cr.ReadUint16(); err != nil {
			return nil, fmt.Errorf("judgement counts: %w", err)
		}
	}

	if r.Score, err = cr.ReadUint32(); err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	if r.MaxCombo, err = cr.ReadUint16(); err != nil {
		return nil, fmt.Errorf("max combo: %w", err)
	}
	perfect, err := cr.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("perfect: %w", err)
	}
	r.Perfect = perfect != 0

	mods, err := cr.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("mods: %w", err)
	}
	r.Mods = Mod(mods)

	lifeBar, _, err := cr.ReadString()
	if err != nil {
		return nil, fmt.Errorf("life bar: %w", err)
	}
	if r.LifeBar, err = DecodeLifeBar(lifeBar); err != nil {
		return nil, err
	}

	if r.Timestamp, err = cr.ReadTimestamp(); err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	return &r, nil
}

// readReplayID reads the trailing identifier. Older replays store it in 4
// bytes; the narrow read only happens after the 8-byte read has failed.
// Reader fixed-width reads consume nothing on failure.
func readReplayID(cr *codec.Reader) (int64, error) {
	id, err := cr.ReadInt64()
	if err == nil {
		return id, nil
	}
	legacy, err := cr.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("replay id: %w", err)
	}
	return int64(legacy), nil
}
