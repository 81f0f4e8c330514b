// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/osrkit/pkg/storage"
)

// ReplayArchive defines the archive operations used by the API
type ReplayArchive interface {
	PutRaw(data []byte) (ksuid.KSUID, error)
	GetRaw(id ksuid.KSUID) ([]byte, error)
	GetEntry(id ksuid.KSUID) (*storage.Entry, error)
	Delete(id ksuid.KSUID) error
	List(limit int) ([]storage.Entry, error)
	ListBy(field, value string, limit int) ([]storage.Entry, error)
	Stats() (storage.Stats, error)
	Close() error
}

// ArchiveFactory opens replay archives
type ArchiveFactory interface {
	// OpenArchive opens the archive described by opts
	OpenArchive(opts storage.Options) (ReplayArchive, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, archive ReplayArchive, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
