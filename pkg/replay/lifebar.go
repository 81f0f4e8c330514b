package replay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ssargent/osrkit/pkg/codec"
)

// EncodeLifeBar renders the life bar curve as comma-terminated "time|life"
// records. Whole life values are written without a fractional part.
func EncodeLifeBar(states []LifeBarState) string {
	var sb strings.Builder
	for _, s := range states {
		sb.WriteString(strconv.FormatInt(int64(s.Time), 10))
		sb.WriteString(fieldSep)
		sb.WriteString(formatLife(s.Life))
		sb.WriteString(recordSep)
	}
	return sb.String()
}

func formatLife(life float32) string {
	f := float64(life)
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
		return strconv.Itoa(int(f))
	}
	return formatFloat(life)
}

// DecodeLifeBar parses a life bar curve. An empty string means no curve
// and returns nil. Unlike the event stream, every record must have exactly
// two fields.
func DecodeLifeBar(data string) ([]LifeBarState, error) {
	if data == "" {
		return nil, nil
	}

	records := strings.Split(strings.TrimSuffix(data, recordSep), recordSep)
	states := make([]LifeBarState, 0, len(records))

	for i, record := range records {
		fields := strings.Split(record, fieldSep)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: life bar record %d: expected 2 fields, got %d", codec.ErrParse, i, len(fields))
		}

		t, err := parseInt32(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: life bar record %d: time: %w", codec.ErrParse, i, err)
		}
		life, err := parseFloat32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: life bar record %d: life: %w", codec.ErrParse, i, err)
		}

		states = append(states, LifeBarState{Time: t, Life: life})
	}

	return states, nil
}
