package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/replay"
)

// ReplayWriter encodes replays into a file
type ReplayWriter struct {
	file    *os.File
	writer  *bufio.Writer
	codec   *replay.Codec
	config  WriterConfig
	mutex   sync.Mutex
	written int64
}

// NewReplayWriter creates (or truncates) the file named by config
func NewReplayWriter(config WriterConfig) (*ReplayWriter, error) {
	if config.Preset < 0 || config.Preset > replay.MaxPreset {
		return nil, fmt.Errorf("invalid preset %d: must be between 0 and %d", config.Preset, replay.MaxPreset)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	bufSize := config.BufferSize
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}

	return &ReplayWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, bufSize),
		codec:  replay.NewCodec(replay.WithPreset(config.Preset)),
		config: config,
	}, nil
}

// WriteReplay encodes r and appends it to the file, returning the number
// of bytes written
func (w *ReplayWriter) WriteReplay(r *replay.Replay) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	data, err := w.codec.Encode(r)
	if err != nil {
		return 0, err
	}

	n, err := w.writer.Write(data)
	w.written += int64(n)
	if err != nil {
		return int64(n), err
	}

	if w.config.Sync {
		if err := w.sync(); err != nil {
			return int64(n), err
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"path":      w.config.FilePath,
		"bytes":     n,
		"mode":      r.Mode.String(),
		"replay_id": r.ReplayID,
	}).Debug("replay encoded")
	return int64(n), nil
}

// Sync flushes buffered data and fsyncs the file
func (w *ReplayWriter) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.sync()
}

func (w *ReplayWriter) sync() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Close flushes and closes the file
func (w *ReplayWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Size returns the number of bytes written so far
func (w *ReplayWriter) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.written
}

// Path returns the file path
func (w *ReplayWriter) Path() string {
	return w.config.FilePath
}

// WriteFile encodes r to path. The replay is written to a temporary file
// next to path and renamed into place, so readers never see a partial file.
func WriteFile(path string, r *replay.Replay, preset int) error {
	tmp := path + ".tmp"

	w, err := NewReplayWriter(WriterConfig{FilePath: tmp, Preset: preset, Sync: true})
	if err != nil {
		return err
	}

	if _, err := w.WriteReplay(r); err != nil {
		w.Close()
		os.Remove(tmp)
		return err
	}
	if err := w.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
