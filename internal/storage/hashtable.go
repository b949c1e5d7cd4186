package storage

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 1024

// HashTable is a key-value store with a fixed number of buckets.
// Collisions are resolved by chaining: each bucket holds a singly linked
// list of entries, newest first. A HashTable is not safe for concurrent use.
type HashTable struct {
	buckets []*node
	count   int
}

type node struct {
	key   string
	value string
	next  *node
}

// Entry is a key-value pair together with the bucket it lives in.
type Entry struct {
	Bucket int
	Key    string
	Value  string
}

// NewHashTable creates a new hash table with specified bucket count.
// A non-positive count falls back to DefaultBuckets.
func NewHashTable(numBuckets int) *HashTable {
	if numBuckets <= 0 {
		numBuckets = DefaultBuckets
	}
	return &HashTable{
		buckets: make([]*node, numBuckets),
	}
}

// Hash returns the DJB2 hash of key.
func Hash(key string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}
	return h
}

// bucketIndex determines which bucket a key belongs to
func (ht *HashTable) bucketIndex(key string) int {
	return int(Hash(key) % uint64(len(ht.buckets)))
}

// NumBuckets returns the fixed bucket count.
func (ht *HashTable) NumBuckets() int {
	if ht == nil {
		return 0
	}
	return len(ht.buckets)
}

// usable reports whether the table can hold entries.
// It is false for a nil or destroyed table.
func (ht *HashTable) usable() bool {
	return ht != nil && len(ht.buckets) > 0
}

// find returns the node holding an already normalized key.
func (ht *HashTable) find(key string) *node {
	for n := ht.buckets[ht.bucketIndex(key)]; n != nil; n = n.next {
		if n.key == key {
			return n
		}
	}
	return nil
}

// Put stores value under key, replacing the value of an existing entry.
// The key is trimmed and validated before the table is touched.
func (ht *HashTable) Put(key, value string) error {
	if !ht.usable() {
		return ErrInvalidArgument
	}

	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	// Overwrite keeps the entry where it is
	if n := ht.find(key); n != nil {
		n.value = value
		return nil
	}

	idx := ht.bucketIndex(key)
	ht.buckets[idx] = &node{
		key:   key,
		value: value,
		next:  ht.buckets[idx],
	}
	ht.count++

	return nil
}

// Get retrieves the value stored under key.
// Keys that trim to nothing are simply not found.
func (ht *HashTable) Get(key string) (string, bool) {
	if !ht.usable() {
		return "", false
	}

	key, ok := Trim(key)
	if !ok {
		return "", false
	}

	n := ht.find(key)
	if n == nil {
		return "", false
	}
	return n.value, true
}

// Delete removes the entry stored under key.
// It returns ErrInvalidArgument for an empty key and ErrNotFound when no
// entry matches.
func (ht *HashTable) Delete(key string) error {
	if !ht.usable() || key == "" {
		return ErrInvalidArgument
	}

	key, ok := Trim(key)
	if !ok {
		return ErrNotFound
	}

	idx := ht.bucketIndex(key)

	var prev *node
	for curr := ht.buckets[idx]; curr != nil; curr = curr.next {
		if curr.key != key {
			prev = curr
			continue
		}

		if prev == nil {
			ht.buckets[idx] = curr.next
		} else {
			prev.next = curr.next
		}
		curr.next = nil
		ht.count--
		return nil
	}
	return ErrNotFound
}

// Count returns the number of entries in the hash table
func (ht *HashTable) Count() int {
	if ht == nil {
		return 0
	}
	return ht.count
}

// Clear drops every entry but keeps the bucket array.
func (ht *HashTable) Clear() {
	if ht == nil {
		return
	}
	for i := range ht.buckets {
		ht.buckets[i] = nil
	}
	ht.count = 0
}

// Destroy releases all entries and the bucket array.
// A destroyed table reports zero entries and rejects writes.
func (ht *HashTable) Destroy() {
	if ht == nil {
		return
	}
	ht.Clear()
	ht.buckets = nil
}

// Walk calls fn for every entry in bucket order, then chain order.
// Iteration stops early when fn returns false. fn must not modify the table.
func (ht *HashTable) Walk(fn func(bucket int, key, value string) bool) {
	if ht == nil {
		return
	}
	for i, head := range ht.buckets {
		for n := head; n != nil; n = n.next {
			if !fn(i, n.key, n.value) {
				return
			}
		}
	}
}

// Entries returns a copy of all entries in walk order.
func (ht *HashTable) Entries() []Entry {
	entries := make([]Entry, 0, ht.Count())
	ht.Walk(func(bucket int, key, value string) bool {
		entries = append(entries, Entry{Bucket: bucket, Key: key, Value: value})
		return true
	})
	return entries
}

// Keys returns all keys in the hash table
func (ht *HashTable) Keys() []string {
	keys := make([]string, 0, ht.Count())
	ht.Walk(func(_ int, key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
