// Package index keeps in-memory secondary indexes from a field value to
// archive IDs.
package index

import (
	"bytes"
	"strings"
	"sync"

	"github.com/google/btree"
	"github.com/segmentio/ksuid"
)

const degree = 16

// item is a composite key: field value then ID, so all IDs for one value are
// adjacent and in creation order
type item struct {
	value string
	id    ksuid.KSUID
}

func less(a, b item) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}

// SecondaryIndex maps values of one field to the IDs that carry them.
// Values are compared case-insensitively.
type SecondaryIndex struct {
	fieldName string
	tree      *btree.BTreeG[item]
	mutex     sync.RWMutex
}

// NewSecondaryIndex creates an empty index for a field
func NewSecondaryIndex(fieldName string) *SecondaryIndex {
	return &SecondaryIndex{
		fieldName: fieldName,
		tree:      btree.NewG(degree, less),
	}
}

// Field returns the indexed field name
func (idx *SecondaryIndex) Field() string {
	return idx.fieldName
}

// Insert adds id under value. Empty values are not indexed.
func (idx *SecondaryIndex) Insert(value string, id ksuid.KSUID) {
	if value == "" {
		return
	}
	idx.mutex.Lock()
	defer idx.mutex.Unlock()
	idx.tree.ReplaceOrInsert(item{value: normalize(value), id: id})
}

// Delete removes id from value and reports whether it was present
func (idx *SecondaryIndex) Delete(value string, id ksuid.KSUID) bool {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()
	_, ok := idx.tree.Delete(item{value: normalize(value), id: id})
	return ok
}

// Search returns up to limit IDs stored under value, oldest first. A limit
// of 0 or less returns all of them.
func (idx *SecondaryIndex) Search(value string, limit int) []ksuid.KSUID {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	v := normalize(value)
	ids := []ksuid.KSUID{}
	idx.tree.AscendGreaterOrEqual(item{value: v, id: ksuid.Nil}, func(it item) bool {
		if it.value != v {
			return false
		}
		ids = append(ids, it.id)
		return limit <= 0 || len(ids) < limit
	})
	return ids
}

// Values returns the distinct indexed values in order
func (idx *SecondaryIndex) Values() []string {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	var values []string
	idx.tree.Ascend(func(it item) bool {
		if len(values) == 0 || values[len(values)-1] != it.value {
			values = append(values, it.value)
		}
		return true
	})
	return values
}

// Len returns the number of indexed IDs
func (idx *SecondaryIndex) Len() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	return idx.tree.Len()
}

func normalize(value string) string {
	return strings.ToLower(value)
}

// IndexManager holds the secondary indexes of an archive
type IndexManager struct {
	indexes map[string]*SecondaryIndex
	mutex   sync.RWMutex
}

// NewIndexManager creates a manager with one empty index per field
func NewIndexManager(fields ...string) *IndexManager {
	im := &IndexManager{indexes: make(map[string]*SecondaryIndex, len(fields))}
	for _, f := range fields {
		im.indexes[f] = NewSecondaryIndex(f)
	}
	return im
}

// Index returns the index for a field
func (im *IndexManager) Index(fieldName string) (*SecondaryIndex, bool) {
	im.mutex.RLock()
	defer im.mutex.RUnlock()
	idx, ok := im.indexes[fieldName]
	return idx, ok
}

// Fields returns the indexed field names
func (im *IndexManager) Fields() []string {
	im.mutex.RLock()
	defer im.mutex.RUnlock()
	fields := make([]string, 0, len(im.indexes))
	for f := range im.indexes {
		fields = append(fields, f)
	}
	return fields
}

// Add indexes id under each field value in values. Fields without an
// index are ignored.
func (im *IndexManager) Add(id ksuid.KSUID, values map[string]string) {
	im.mutex.RLock()
	defer im.mutex.RUnlock()
	for field, v := range values {
		if idx, ok := im.indexes[field]; ok {
			idx.Insert(v, id)
		}
	}
}

// Remove is the inverse of Add
func (im *IndexManager) Remove(id ksuid.KSUID, values map[string]string) {
	im.mutex.RLock()
	defer im.mutex.RUnlock()
	for field, v := range values {
		if idx, ok := im.indexes[field]; ok {
			idx.Delete(v, id)
		}
	}
}
