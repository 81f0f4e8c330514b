// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/ssargent/osrkit/pkg/storage"
)

// DefaultArchiveFactory opens pebble-backed archives
type DefaultArchiveFactory struct{}

// NewArchiveFactory creates a new archive factory
func NewArchiveFactory() ArchiveFactory {
	return &DefaultArchiveFactory{}
}

// OpenArchive opens the archive at opts.Path
func (f *DefaultArchiveFactory) OpenArchive(opts storage.Options) (ReplayArchive, error) {
	archive, err := storage.Open(opts)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(ctx context.Context, archive ReplayArchive, config ServerConfig) error {
	return StartServer(ctx, archive, config)
}
