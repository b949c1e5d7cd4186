package database

import (
	"errors"
	"os"

	"github.com/sidquark/minikv/internal/log"
	"github.com/sidquark/minikv/internal/persistence"
	"github.com/sidquark/minikv/internal/storage"
)

// DB is the store handed to callers: a hash table plus the snapshot file it
// is loaded from and saved to. A DB has a single owner and performs no
// locking.
type DB struct {
	storage  *storage.HashTable
	config   *Config
	isClosed bool
}

// Config holds database configuration options
type Config struct {
	// NumBuckets is fixed for the lifetime of the DB.
	NumBuckets int
	// DataFile is used by Load and Save when they are called without a path.
	DataFile string
	// AutoLoad loads DataFile on New when the file exists.
	AutoLoad bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		NumBuckets: storage.DefaultBuckets,
		DataFile:   "",
		AutoLoad:   false,
	}
}

// New creates a new database instance
func New(config *Config) (*DB, error) {
	if config == nil {
		config = DefaultConfig()
	}

	db := &DB{
		storage: storage.NewHashTable(config.NumBuckets),
		config:  config,
	}

	if config.AutoLoad && config.DataFile != "" {
		err := db.Load("")
		if errors.Is(err, os.ErrNotExist) {
			// No snapshot yet, start empty
			log.Database.Info().Str("path", config.DataFile).Msg("no snapshot to load")
		} else if err != nil {
			return nil, NewDatabaseError("initialization", "", err)
		}
	}

	log.Database.Debug().
		Int("buckets", db.storage.NumBuckets()).
		Int("entries", db.storage.Count()).
		Msg("database ready")

	return db, nil
}

// Close releases every entry held by the database
func (db *DB) Close() error {
	if db.isClosed {
		return nil
	}

	db.storage.Destroy()
	db.isClosed = true

	return nil
}

// Load replaces the database contents with the snapshot at path.
// An empty path means the configured data file.
func (db *DB) Load(path string) error {
	if db.isClosed {
		return ErrDatabaseClosed
	}

	path, err := db.resolvePath(path)
	if err != nil {
		return NewDatabaseError("load", "", err)
	}

	if _, err := persistence.Load(db.storage, path); err != nil {
		return NewDatabaseError("load", "", err)
	}
	return nil
}

// Save writes the database contents to path, truncating it.
// An empty path means the configured data file.
func (db *DB) Save(path string) error {
	if db.isClosed {
		return ErrDatabaseClosed
	}

	path, err := db.resolvePath(path)
	if err != nil {
		return NewDatabaseError("save", "", err)
	}

	if _, err := persistence.Save(db.storage, path); err != nil {
		return NewDatabaseError("save", "", err)
	}
	return nil
}

func (db *DB) resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if db.config.DataFile == "" {
		return "", ErrNoDataFile
	}
	return db.config.DataFile, nil
}
