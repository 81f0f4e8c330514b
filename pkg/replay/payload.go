package replay

import (
	"encoding/base64"
	"fmt"

	"github.com/ssargent/osrkit/pkg/codec"
)

// ParseReplayData parses only the frames of a replay from an API-style
// payload, such as the one returned by API v1's get_replay endpoint.
//
// decoded reports that payload has already been base64-decoded and
// decompressed that it has already been LZMA-decompressed to text. Only the
// frames are returned; a trailing seed record is parsed and dropped.
func ParseReplayData(payload []byte, decoded, decompressed bool, mode GameMode) ([]ReplayEvent, error) {
	data := payload

	if !decoded {
		raw := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
		n, err := base64.StdEncoding.Decode(raw, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: base64: %w", codec.ErrDecode, err)
		}
		data = raw[:n]
	}

	if !decompressed {
		var err error
		if data, err = decompress(data); err != nil {
			return nil, err
		}
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	events, _, err := DecodeEvents(text, mode)
	if err != nil {
		return nil, err
	}
	return events, nil
}
