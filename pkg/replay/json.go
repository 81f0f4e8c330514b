package replay

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a replay whose events are typed by its mode field
func (r *Replay) UnmarshalJSON(data []byte) error {
	type plain Replay
	var aux struct {
		plain
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	events, err := UnmarshalEvents(aux.plain.Mode, aux.Events)
	if err != nil {
		return err
	}

	*r = Replay(aux.plain)
	r.Events = events
	return nil
}

// UnmarshalEvents decodes raw JSON frames as the variant for mode
func UnmarshalEvents(mode GameMode, raw []json.RawMessage) ([]ReplayEvent, error) {
	events := make([]ReplayEvent, 0, len(raw))
	for i, msg := range raw {
		var (
			e   ReplayEvent
			err error
		)
		switch mode {
		case ModeTaiko:
			var v EventTaiko
			err = json.Unmarshal(msg, &v)
			e = v
		case ModeCatch:
			var v EventCatch
			err = json.Unmarshal(msg, &v)
			e = v
		case ModeMania:
			var v EventMania
			err = json.Unmarshal(msg, &v)
			e = v
		default:
			var v EventOsu
			err = json.Unmarshal(msg, &v)
			e = v
		}
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
