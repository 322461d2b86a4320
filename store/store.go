// Package store caches downloaded road networks in a local SQLite database so
// repeated runs do not hit Overpass again.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/glebarez/sqlite"
	"github.com/klauspost/compress/zstd"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrCacheMiss indicates no entry (or only an expired one) exists for a key.
var ErrCacheMiss = errors.New("store: cache miss")

// NetworkEntry is one cached network download.
type NetworkEntry struct {
	gorm.Model

	Key         string `gorm:"uniqueIndex"`
	Places      string
	NetworkType string
	Payload     []byte // zstd-compressed
	RawSize     int
	FetchedAt   time.Time
}

// Store wraps the cache database.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Key builds the cache key for a list of places and a network type.
// Place order matters, matching the order the download was merged in.
func Key(places []string, networkType string) string {
	return networkType + "|" + strings.Join(places, ";")
}

// Open opens (creating if needed) the cache database at filePath.
func Open(filePath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(filePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %s", filePath, err)
	}

	err = db.AutoMigrate(
		&NetworkEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("database migration failed: %s", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	inner, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to close database, can't read inner data: %s", err)
	}

	err = inner.Close()
	if err != nil {
		return fmt.Errorf("failed to close inner database: %s", err)
	}

	return nil
}

// Get returns the decompressed payload stored under key.
// Entries older than ttl are treated as missing; ttl <= 0 never expires.
func (s *Store) Get(key string, ttl time.Duration) ([]byte, error) {
	var entry NetworkEntry
	result := s.db.Limit(1).Find(&entry, "key = ?", key)
	if result.Error != nil {
		return nil, fmt.Errorf("cache lookup %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCacheMiss
	}
	if ttl > 0 && s.now().Sub(entry.FetchedAt) > ttl {
		log.Debugf("cache entry %q expired (fetched %s)", key, humanize.Time(entry.FetchedAt))
		return nil, ErrCacheMiss
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := dec.DecodeAll(entry.Payload, make([]byte, 0, entry.RawSize))
	if err != nil {
		return nil, fmt.Errorf("cache entry %q is corrupt: %w", key, err)
	}

	return data, nil
}

// Put stores payload under key, replacing any previous entry.
func (s *Store) Put(key string, places []string, networkType string, payload []byte) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	entry := NetworkEntry{
		Key:         key,
		Places:      strings.Join(places, ";"),
		NetworkType: networkType,
		Payload:     compressed,
		RawSize:     len(payload),
		FetchedAt:   s.now(),
	}

	// Hard-delete the old row so the unique index accepts the new one.
	if err := s.db.Unscoped().Where("key = ?", key).Delete(&NetworkEntry{}).Error; err != nil {
		return fmt.Errorf("cache replace %q: %w", key, err)
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("cache write %q: %w", key, err)
	}
	log.Debugf("cached %q: %s → %s", key, humanize.Bytes(uint64(len(payload))), humanize.Bytes(uint64(len(compressed))))

	return nil
}
