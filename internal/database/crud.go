package database

// Put stores a value for a given key
func (db *DB) Put(key, value string) error {
	// Check if database is closed
	if db.isClosed {
		return ErrDatabaseClosed
	}

	if err := db.storage.Put(key, value); err != nil {
		return NewDatabaseError("put", key, err)
	}
	return nil
}

// Get retrieves a value for a given key
func (db *DB) Get(key string) (string, error) {
	if db.isClosed {
		return "", ErrDatabaseClosed
	}

	value, exists := db.storage.Get(key)
	if !exists {
		return "", NewDatabaseError("get", key, ErrKeyNotFound)
	}

	return value, nil
}

// Delete removes a key-value pair
func (db *DB) Delete(key string) error {
	if db.isClosed {
		return ErrDatabaseClosed
	}

	if err := db.storage.Delete(key); err != nil {
		return NewDatabaseError("delete", key, err)
	}
	return nil
}

// Keys returns all keys in the database
func (db *DB) Keys() []string {
	if db.isClosed {
		return []string{}
	}

	return db.storage.Keys()
}

// Count returns the number of entries in the database
func (db *DB) Count() int {
	if db == nil || db.isClosed {
		return 0
	}

	return db.storage.Count()
}
