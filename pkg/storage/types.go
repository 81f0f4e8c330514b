package storage

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/osrkit/pkg/replay"
)

// Key namespaces
const (
	replayPrefix = "r/" // r/<id> -> encoded replay
	metaPrefix   = "m/" // m/<id> -> Entry as JSON
	hashPrefix   = "h/" // h/<replay hash> -> id
)

// Indexed entry fields for ListBy
const (
	FieldPlayer  = "player"
	FieldBeatmap = "beatmap"
)

// Options configures an Archive
type Options struct {
	Path      string // Directory of the pebble database
	Preset    int    // LZMA preset used when storing decoded replays
	CacheSize int64  // Block cache size in bytes, 0 for the pebble default
}

// Entry is the metadata kept for every archived replay
type Entry struct {
	ID      ksuid.KSUID    `json:"id"`
	Created time.Time      `json:"created"`
	Size    int            `json:"size"`
	Summary replay.Summary `json:"summary"`
}

// Stats describes the archive contents
type Stats struct {
	Replays int   `json:"replays"`
	Bytes   int64 `json:"bytes"`
}

// Errors
var (
	ErrNotFound  = &ArchiveError{"replay not found"}
	ErrDuplicate = &ArchiveError{"replay already archived"}
	ErrInvalidID = &ArchiveError{"invalid replay id"}

	// ErrUnknownField is returned by ListBy for a field without an index
	ErrUnknownField = &ArchiveError{"unknown index field"}
)

// ArchiveError represents an archive error
type ArchiveError struct {
	Message string
}

func (e *ArchiveError) Error() string {
	return e.Message
}
