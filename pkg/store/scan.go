package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/replay"
)

// ScanDir returns an iterator over the replay files in config.Dir, in
// lexical path order. Files are decoded lazily as the iterator advances.
func ScanDir(config ScanConfig) (ReplayIterator, error) {
	paths, err := ListReplays(config.Dir, config.Recursive)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("path", config.Dir).WithField("files", len(paths)).Debug("scanning replay directory")
	return &dirIterator{paths: paths, skipInvalid: config.SkipInvalid}, nil
}

// IsReplayFile reports whether path has the replay file extension
func IsReplayFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ListReplays returns the sorted paths of the replay files in dir
func ListReplays(dir string, recursive bool) ([]string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsReplayFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && IsReplayFile(e.Name()) {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// dirIterator implements ReplayIterator over a list of files
type dirIterator struct {
	paths       []string
	pos         int
	path        string
	replay      *replay.Replay
	err         error
	skipInvalid bool
	closed      bool
}

func (it *dirIterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}

	for it.pos < len(it.paths) {
		path := it.paths[it.pos]
		it.pos++

		r, err := ReadFile(path)
		if err != nil {
			if it.skipInvalid && errors.Is(err, ErrCorruption) {
				logger.Log.WithField("path", path).WithError(err).Warn("skipping invalid replay")
				continue
			}
			it.path, it.replay, it.err = path, nil, err
			return false
		}

		it.path, it.replay = path, r
		return true
	}

	it.path, it.replay = "", nil
	return false
}

func (it *dirIterator) Replay() *replay.Replay {
	return it.replay
}

func (it *dirIterator) Path() string {
	return it.path
}

func (it *dirIterator) Err() error {
	return it.err
}

func (it *dirIterator) Close() error {
	it.closed = true
	it.replay = nil
	return nil
}
