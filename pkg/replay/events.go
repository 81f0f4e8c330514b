package replay

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ssargent/osrkit/pkg/codec"
)

const (
	recordSep = ","
	fieldSep  = "|"

	// seedSentinel marks the trailing record that carries the RNG seed
	seedSentinel = -12345

	// skip frames injected by lazer in the first two records
	skipFrameX = 256.0
	skipFrameY = -500.0
)

// EncodeEvents renders frames as the textual event stream, one
// comma-terminated "delta|f2|f3|f4" record per frame, followed by the seed
// record when seed is non-nil. A nil frame or a type other than the four
// frame variants fails with ErrInvalidFormat.
func EncodeEvents(events []ReplayEvent, seed *int32) (string, error) {
	var sb strings.Builder
	sb.Grow(len(events) * 24)

	for i, e := range events {
		if err := writeEvent(&sb, e); err != nil {
			return "", fmt.Errorf("%w: event %d: %w", codec.ErrInvalidFormat, i, err)
		}
	}
	if seed != nil {
		fmt.Fprintf(&sb, "%d|0|0|%d,", seedSentinel, *seed)
	}
	return sb.String(), nil
}

func writeEvent(sb *strings.Builder, e ReplayEvent) error {
	switch e := e.(type) {
	case EventOsu:
		fmt.Fprintf(sb, "%d|%s|%s|%d,", e.TimeDelta, formatFloat(e.X), formatFloat(e.Y), uint32(e.Keys))
	case EventTaiko:
		fmt.Fprintf(sb, "%d|%d|0|%d,", e.TimeDelta, e.X, uint32(e.Keys))
	case EventCatch:
		dashing := 0
		if e.Dashing {
			dashing = 1
		}
		fmt.Fprintf(sb, "%d|%s|0|%d,", e.TimeDelta, formatFloat(e.X), dashing)
	case EventMania:
		fmt.Fprintf(sb, "%d|%d|0|0,", e.TimeDelta, uint32(e.Keys))
	case nil:
		return errors.New("nil frame")
	default:
		return fmt.Errorf("unsupported frame type %T", e)
	}
	return nil
}

// DecodeEvents parses the textual event stream for the given mode.
//
// Records that do not split into exactly four fields are skipped. A final
// record with time delta -12345 carries the RNG seed and is not returned as
// a frame. Records at index 0 or 1 positioned at (256, -500) are skip frames
// and are dropped. The time delta and fourth field are parsed for every
// record, skip frames included. Any numeric field that fails to parse
// aborts the decode.
func DecodeEvents(data string, mode GameMode) ([]ReplayEvent, *int32, error) {
	data = strings.TrimSuffix(data, recordSep)
	if data == "" {
		return []ReplayEvent{}, nil, nil
	}

	records := strings.Split(data, recordSep)
	events := make([]ReplayEvent, 0, len(records))
	last := len(records) - 1
	var seed *int32

	for i, record := range records {
		fields := strings.Split(record, fieldSep)
		if len(fields) != 4 {
			continue
		}

		delta, err := parseInt32(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: time delta: %w", codec.ErrParse, i, err)
		}

		if delta == seedSentinel && i == last {
			s, err := parseSeed(fields[3])
			if err != nil {
				return nil, nil, fmt.Errorf("%w: record %d: rng seed: %w", codec.ErrParse, i, err)
			}
			seed = &s
			continue
		}

		keys, err := parseUint32(fields[3])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: keys: %w", codec.ErrParse, i, err)
		}

		if i < 2 && isSkipFrame(fields) {
			continue
		}

		e, err := decodeEvent(mode, delta, keys, fields)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %w", codec.ErrParse, i, err)
		}
		events = append(events, e)
	}

	return events, seed, nil
}

// decodeEvent is the single place a textual record becomes a frame, so the
// variant always matches mode. keys is the already parsed fourth field.
func decodeEvent(mode GameMode, delta int32, keys uint32, fields []string) (ReplayEvent, error) {
	switch mode {
	case ModeTaiko:
		x, err := parseInt32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		return EventTaiko{TimeDelta: delta, X: x, Keys: KeyTaiko(keys)}, nil

	case ModeCatch:
		x, err := parseFloat32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		return EventCatch{TimeDelta: delta, X: x, Dashing: keys == 1}, nil

	case ModeMania:
		maniaKeys, err := parseUint32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		return EventMania{TimeDelta: delta, Keys: KeyMania(maniaKeys)}, nil

	default:
		x, err := parseFloat32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		y, err := parseFloat32(fields[2])
		if err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
		return EventOsu{TimeDelta: delta, X: x, Y: y, Keys: Key(keys)}, nil
	}
}

// isSkipFrame checks fields 2 and 3 as floats whatever the mode
func isSkipFrame(fields []string) bool {
	x, errX := parseFloat32(fields[1])
	y, errY := parseFloat32(fields[2])
	return errX == nil && errY == nil && x == skipFrameX && y == skipFrameY
}

// parseSeed accepts the signed and unsigned 32-bit ranges; values above
// MaxInt32 wrap.
func parseSeed(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of 32-bit range", v)
	}
	return int32(uint32(v)), nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

// formatFloat gives the shortest decimal that round-trips, never in
// exponent form: 256 not 256.0, 0.8 not 0.800000011920929.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
