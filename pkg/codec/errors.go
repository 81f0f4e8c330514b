package codec

import (
	"errors"
	"fmt"
	"io"
)

// Error taxonomy shared by every layer of the replay format. Callers should
// test with errors.Is / errors.As; messages are not stable.
var (
	ErrIO                  = errors.New("i/o error")
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrInvalidStringMarker = errors.New("invalid string marker")
	ErrUTF8                = errors.New("invalid utf-8")
	ErrParse               = errors.New("parse error")
	ErrCompression         = errors.New("compression error")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrDecode              = errors.New("decode error")
)

// InvalidStringMarkerError reports a string whose leading marker byte was
// neither 0x00 nor 0x0b.
type InvalidStringMarkerError struct {
	Marker byte
}

func (e *InvalidStringMarkerError) Error() string {
	return fmt.Sprintf("invalid string marker: expected 0x00 or 0x0b, got %#x", e.Marker)
}

// Is lets errors.Is(err, ErrInvalidStringMarker) match any marker value.
func (e *InvalidStringMarkerError) Is(target error) bool {
	return target == ErrInvalidStringMarker
}

// IOError classifies a failed read or write as ErrIO. Short reads
// additionally match ErrUnexpectedEOF.
func IOError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnexpectedEOF, ErrIO)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}
