package birdbase

import (
	"empathy/logger"
	"errors"
	"fmt"
	"time"

	"git.mills.io/prologic/bitcask"
)

// ErrNotFound is returned by Get for missing keys
var ErrNotFound = errors.New("key not found")

// DB is a bitcask store holding gzip compressed values under hashed keys
type DB struct {
	data *bitcask.Bitcask
	path string
}

func Open(path string) (*DB, error) {
	// room info is small, 1MB is plenty
	data, err := bitcask.Open(path, bitcask.WithMaxValueSize(1024*1024))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &DB{data: data, path: path}, nil
}

func (db *DB) Path() string { return db.path }

// Close reclaims space held by expired and overwritten values, then closes
// the database
func (db *DB) Close() error {
	db.Merge()
	return db.data.Close()
}

func (db *DB) Merge() {
	logger.Debug("Merging database to reclaim space...", "path", db.path)
	if err := db.data.Merge(); err != nil {
		logger.Error("Error merging database", "path", db.path, "error", err)
		return
	}
	logger.Debug("Database merge complete.", "path", db.path)
}

func (db *DB) PutBytes(key string, value []byte) error {
	compressedValue, err := compress(value)
	if err != nil {
		return err
	}
	return db.data.Put(CacheKey(key), compressedValue)
}

func (db *DB) PutBytesExpireHours(key string, value []byte, expire int) error {
	compressedValue, err := compress(value)
	if err != nil {
		return err
	}
	return db.data.PutWithTTL(CacheKey(key), compressedValue, time.Hour*time.Duration(expire))
}

func (db *DB) Get(key string) ([]byte, error) {
	compressedValue, err := db.data.Get(CacheKey(key))
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decompress(compressedValue)
}

func (db *DB) Has(key string) bool {
	return db.data.Has(CacheKey(key))
}

func (db *DB) Delete(key string) error {
	return db.data.Delete(CacheKey(key))
}
