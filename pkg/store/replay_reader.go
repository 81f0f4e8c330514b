package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/replay"
)

const defaultBufferSize = 64 << 10

// ReplayReader decodes a replay from a file
type ReplayReader struct {
	file   *os.File
	reader *bufio.Reader
	codec  *replay.Codec
	size   int64
	config ReaderConfig
}

// NewReplayReader opens the replay file named by config
func NewReplayReader(config ReaderConfig) (*ReplayReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, config.FilePath)
		}
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if stat.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotReplay, config.FilePath)
	}

	bufSize := config.BufferSize
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}

	return &ReplayReader{
		file:   file,
		reader: bufio.NewReaderSize(file, bufSize),
		codec:  replay.NewCodec(),
		size:   stat.Size(),
		config: config,
	}, nil
}

// ReadReplay decodes the replay. Decoding failures wrap both
// ErrCorruption and the underlying codec error.
func (r *ReplayReader) ReadReplay() (*replay.Replay, error) {
	rep, err := r.codec.DecodeFrom(r.reader)
	if err != nil {
		logger.Log.WithField("path", r.config.FilePath).WithError(err).Debug("replay decode failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruption, r.config.FilePath, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"path":      r.config.FilePath,
		"bytes":     r.size,
		"mode":      rep.Mode.String(),
		"replay_id": rep.ReplayID,
	}).Debug("replay decoded")
	return rep, nil
}

// Size returns the size of the replay file in bytes
func (r *ReplayReader) Size() int64 {
	return r.size
}

// Path returns the file path
func (r *ReplayReader) Path() string {
	return r.config.FilePath
}

// Close closes the replay reader
func (r *ReplayReader) Close() error {
	return r.file.Close()
}

// ReadFile decodes the replay stored at path
func ReadFile(path string) (*replay.Replay, error) {
	r, err := NewReplayReader(ReaderConfig{FilePath: path})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.ReadReplay()
}
