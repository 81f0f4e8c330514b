package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/osrkit/pkg/index"
	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/replay"
)

// Archive stores encoded replays in pebble under KSUID keys, with a
// persistent index on the replay hash and in-memory indexes on player and
// beatmap.
type Archive struct {
	db      *pebble.DB
	codec   *replay.Codec
	indexes *index.IndexManager
	// serializes the duplicate check with the write
	mu sync.Mutex
}

// Open opens (or creates) the archive at opts.Path
func Open(opts Options) (*Archive, error) {
	if opts.Preset < 0 || opts.Preset > replay.MaxPreset {
		return nil, fmt.Errorf("invalid preset %d: must be between 0 and %d", opts.Preset, replay.MaxPreset)
	}

	if err := os.MkdirAll(opts.Path, 0750); err != nil {
		return nil, err
	}

	pebbleOpts := &pebble.Options{}
	if opts.CacheSize > 0 {
		cache := pebble.NewCache(opts.CacheSize)
		defer cache.Unref()
		pebbleOpts.Cache = cache
	}

	db, err := pebble.Open(opts.Path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	a := &Archive{
		db:      db,
		codec:   replay.NewCodec(replay.WithPreset(opts.Preset)),
		indexes: index.NewIndexManager(FieldPlayer, FieldBeatmap),
	}
	if err := a.rebuildIndexes(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Log.WithField("path", opts.Path).Debug("archive opened")
	return a, nil
}

// rebuildIndexes loads the in-memory indexes from the stored entries
func (a *Archive) rebuildIndexes() error {
	var n int
	err := a.scanEntries(func(e Entry) bool {
		a.indexes.Add(e.ID, indexValues(e.Summary))
		n++
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to build indexes: %w", err)
	}
	logger.Log.WithField("entries", n).Debug("archive indexes built")
	return nil
}

func indexValues(s replay.Summary) map[string]string {
	return map[string]string{
		FieldPlayer:  s.Username,
		FieldBeatmap: s.BeatmapHash,
	}
}

// Put encodes r and stores it. If a replay with the same replay hash is
// already archived, its ID is returned together with ErrDuplicate.
func (a *Archive) Put(r *replay.Replay) (ksuid.KSUID, error) {
	data, err := a.codec.Encode(r)
	if err != nil {
		return ksuid.Nil, err
	}
	return a.put(data, r)
}

// PutRaw stores an encoded replay as-is after checking that it decodes
func (a *Archive) PutRaw(data []byte) (ksuid.KSUID, error) {
	r, err := a.codec.Decode(data)
	if err != nil {
		return ksuid.Nil, err
	}
	return a.put(data, r)
}

func (a *Archive) put(data []byte, r *replay.Replay) (ksuid.KSUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.ReplayHash != "" {
		existing, err := a.findByHash(r.ReplayHash)
		if err == nil {
			return existing, ErrDuplicate
		}
		if !errors.Is(err, ErrNotFound) {
			return ksuid.Nil, err
		}
	}

	id := ksuid.New()
	entry := Entry{
		ID:      id,
		Created: id.Time().UTC(),
		Size:    len(data),
		Summary: r.Summary(),
	}
	meta, err := json.Marshal(entry)
	if err != nil {
		return ksuid.Nil, err
	}

	batch := a.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(replayKey(id), data, nil); err != nil {
		return ksuid.Nil, err
	}
	if err := batch.Set(metaKey(id), meta, nil); err != nil {
		return ksuid.Nil, err
	}
	if r.ReplayHash != "" {
		if err := batch.Set(hashKey(r.ReplayHash), id.Bytes(), nil); err != nil {
			return ksuid.Nil, err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to commit replay: %w", err)
	}
	a.indexes.Add(id, indexValues(entry.Summary))

	logger.Log.WithFields(logrus.Fields{
		"replay_id": r.ReplayID,
		"id":        id.String(),
		"bytes":     len(data),
		"mode":      r.Mode.String(),
	}).Info("replay archived")
	return id, nil
}

// Get returns the decoded replay stored under id
func (a *Archive) Get(id ksuid.KSUID) (*replay.Replay, error) {
	data, err := a.GetRaw(id)
	if err != nil {
		return nil, err
	}
	return a.codec.Decode(data)
}

// GetRaw returns the encoded replay stored under id
func (a *Archive) GetRaw(id ksuid.KSUID) ([]byte, error) {
	return a.get(replayKey(id))
}

// GetEntry returns the metadata stored for id
func (a *Archive) GetEntry(id ksuid.KSUID) (*Entry, error) {
	meta, err := a.get(metaKey(id))
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(meta, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry %s: %w", id, err)
	}
	return &entry, nil
}

// FindByHash returns the ID of the replay with the given replay hash
func (a *Archive) FindByHash(hash string) (ksuid.KSUID, error) {
	return a.findByHash(hash)
}

func (a *Archive) findByHash(hash string) (ksuid.KSUID, error) {
	raw, err := a.get(hashKey(hash))
	if err != nil {
		return ksuid.Nil, err
	}
	id, err := ksuid.FromBytes(raw)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return id, nil
}

// Delete removes the replay stored under id and its hash index entry
func (a *Archive) Delete(id ksuid.KSUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, err := a.GetEntry(id)
	if err != nil {
		return err
	}

	batch := a.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(replayKey(id), nil); err != nil {
		return err
	}
	if err := batch.Delete(metaKey(id), nil); err != nil {
		return err
	}
	if entry.Summary.ReplayHash != "" {
		if err := batch.Delete(hashKey(entry.Summary.ReplayHash), nil); err != nil {
			return err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete replay: %w", err)
	}
	a.indexes.Remove(id, indexValues(entry.Summary))

	logger.Log.WithField("id", id.String()).Info("replay deleted")
	return nil
}

// List returns up to limit entries in ID order, which is creation order to
// the second. A limit of 0 or less returns every entry.
func (a *Archive) List(limit int) ([]Entry, error) {
	entries := []Entry{}
	err := a.scanEntries(func(e Entry) bool {
		entries = append(entries, e)
		return limit <= 0 || len(entries) < limit
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListBy returns up to limit entries whose field equals value, oldest
// first. Values match case-insensitively. field is FieldPlayer or
// FieldBeatmap.
func (a *Archive) ListBy(field, value string, limit int) ([]Entry, error) {
	idx, ok := a.indexes.Index(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	entries := []Entry{}
	for _, id := range idx.Search(value, limit) {
		e, err := a.GetEntry(id)
		if err != nil {
			// deleted between the lookup and the read
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, nil
}

// Stats counts the archived replays and their encoded size
func (a *Archive) Stats() (Stats, error) {
	var stats Stats
	err := a.scanEntries(func(e Entry) bool {
		stats.Replays++
		stats.Bytes += int64(e.Size)
		return true
	})
	return stats, err
}

// Close closes the underlying database
func (a *Archive) Close() error {
	return a.db.Close()
}

// scanEntries walks the metadata namespace in key order until fn returns
// false
func (a *Archive) scanEntries(fn func(Entry) bool) error {
	prefix := []byte(metaPrefix)
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return fmt.Errorf("failed to iterate archive: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return fmt.Errorf("failed to decode entry %q: %w", iter.Key(), err)
		}
		if !fn(e) {
			break
		}
	}
	return iter.Error()
}

// get copies the value for key; pebble's slice is only valid until the
// closer is closed
func (a *Archive) get(key []byte) ([]byte, error) {
	value, closer, err := a.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// ParseID parses the string form of an archive ID
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// KSUID strings sort in time order, so ordering by key is ordering by
// insertion time.
func replayKey(id ksuid.KSUID) []byte { return []byte(replayPrefix + id.String()) }
func metaKey(id ksuid.KSUID) []byte   { return []byte(metaPrefix + id.String()) }
func hashKey(hash string) []byte      { return []byte(hashPrefix + hash) }

func prefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	end[len(end)-1]++
	return end
}
