package storage

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// ImageFile is one index row linking a stored file to its download URI
type ImageFile struct {
	ID          int64
	Name        string
	DownloadURI string
}

// Index records stored files under generated ids, ordered by id.
// Names are unique by convention only.
type Index struct {
	mu     sync.RWMutex
	rows   *treemap.Map
	nextID int64
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		rows:   treemap.NewWith(utils.Int64Comparator),
		nextID: 1,
	}
}

// Save appends a row and returns it with its generated id
func (x *Index) Save(name, downloadURI string) ImageFile {
	x.mu.Lock()
	defer x.mu.Unlock()

	row := ImageFile{ID: x.nextID, Name: name, DownloadURI: downloadURI}
	x.rows.Put(row.ID, row)
	x.nextID++
	return row
}

// FindByName returns the oldest row recorded for name
func (x *Index) FindByName(name string) (ImageFile, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	_, v := x.rows.Find(func(_ interface{}, value interface{}) bool {
		return value.(ImageFile).Name == name
	})
	if v == nil {
		return ImageFile{}, false
	}
	return v.(ImageFile), true
}

// DeleteByName removes every row recorded for name and returns how many
// were removed
func (x *Index) DeleteByName(name string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	var ids []interface{}
	x.rows.Each(func(key interface{}, value interface{}) {
		if value.(ImageFile).Name == name {
			ids = append(ids, key)
		}
	})
	for _, id := range ids {
		x.rows.Remove(id)
	}
	return len(ids)
}

// All returns every row ordered by id
func (x *Index) All() []ImageFile {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows := make([]ImageFile, 0, x.rows.Size())
	for _, v := range x.rows.Values() {
		rows = append(rows, v.(ImageFile))
	}
	return rows
}
