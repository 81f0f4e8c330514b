package store

import (
	"github.com/ssargent/osrkit/pkg/replay"
)

// Extension is the file extension of replay files
const Extension = ".osr"

// WriterConfig holds configuration for the replay writer
type WriterConfig struct {
	FilePath   string // Path of the replay file to create
	Preset     int    // LZMA preset (0-9)
	Sync       bool   // fsync on every write
	BufferSize int    // Write buffer size
}

// ReaderConfig holds configuration for the replay reader
type ReaderConfig struct {
	FilePath   string // Path of the replay file
	BufferSize int    // Read buffer size
}

// ScanConfig holds configuration for a directory scan
type ScanConfig struct {
	Dir         string // Directory to scan
	Recursive   bool   // Descend into subdirectories
	SkipInvalid bool   // Log and skip files that fail to decode
}

// ReplayIterator provides streaming access to replay files
type ReplayIterator interface {
	Next() bool
	Replay() *replay.Replay
	Path() string
	Err() error
	Close() error
}

// Errors
var (
	ErrNotFound   = &StoreError{"replay file not found"}
	ErrNotReplay  = &StoreError{"not a replay file"}
	ErrCorruption = &StoreError{"replay data corruption detected"}
)

// StoreError represents a replay file error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
