package archive

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

var cacheBucket = []byte("blobs")

// Cache is an optional on-disk store of decompressed DAT blobs, keyed by
// resource id, so repeated lookups of the same weenie or landblock avoid
// re-walking the B-tree and re-running LZSS decompression.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens (creating if needed) a bbolt-backed blob cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: opening cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cacheBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: initializing cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

func cacheKey(id uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, id)
	return key
}

// Get returns the cached blob for id, if present.
func (c *Cache) Get(id uint32) ([]byte, bool) {
	var out []byte
	_ = c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(cacheBucket).Get(cacheKey(id))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil
}

// Put stores blob under id, overwriting any existing entry.
func (c *Cache) Put(id uint32, blob []byte) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(cacheBucket).Put(cacheKey(id), blob)
	})
}

// GetFileCached is GetFile with a Cache-backed fast path: on a cache
// miss it decompresses via the Database as usual and populates the
// cache for next time.
func (db *Database) GetFileCached(cache *Cache, id uint32) ([]byte, error) {
	if cache != nil {
		if blob, ok := cache.Get(id); ok {
			return blob, nil
		}
	}
	blob, err := db.GetFile(id)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := cache.Put(id, blob); err != nil {
			return nil, err
		}
	}
	return blob, nil
}
