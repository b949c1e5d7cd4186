package database

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sidquark/minikv/internal/storage"
)

// SortOrder selects the key order of a sorted listing
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder accepts "asc", "desc" and their shell flag forms "-asc",
// "-desc", "--asc" and "--desc".
func ParseSortOrder(s string) (SortOrder, error) {
	name := strings.ToLower(s)
	if !strings.HasPrefix(name, "---") {
		name = strings.TrimPrefix(strings.TrimPrefix(name, "-"), "-")
	}

	switch name {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort order %q", s)
}

const listFooter = "============================================="

// List writes every entry in storage order, each prefixed with its bucket.
func (db *DB) List(w io.Writer) error {
	if db.isClosed {
		return ErrDatabaseClosed
	}

	entries := db.storage.Entries()
	return writeListing(w, entries, func(e storage.Entry) string {
		return fmt.Sprintf("[%d] %s = %s\n", e.Bucket, e.Key, e.Value)
	})
}

// ListSorted writes every entry ordered by key. Keys are compared byte-wise.
// The listing works on a copy, so the table's chains are left as they are.
func (db *DB) ListSorted(w io.Writer, order SortOrder) error {
	if db.isClosed {
		return ErrDatabaseClosed
	}

	entries := db.Sorted(order)
	return writeListing(w, entries, func(e storage.Entry) string {
		return fmt.Sprintf("%s = %s\n", e.Key, e.Value)
	})
}

// Sorted returns a copy of all entries ordered by key.
func (db *DB) Sorted(order SortOrder) []storage.Entry {
	if db.isClosed {
		return nil
	}

	entries := db.storage.Entries()
	slices.SortFunc(entries, func(a, b storage.Entry) int {
		if order == Descending {
			return strings.Compare(b.Key, a.Key)
		}
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}

func writeListing(w io.Writer, entries []storage.Entry, format func(storage.Entry) string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "===== minikv (total: %d) =====\n", len(entries))
	if len(entries) == 0 {
		sb.WriteString("(no data)\n")
	} else {
		for _, e := range entries {
			sb.WriteString(format(e))
		}
		fmt.Fprintf(&sb, "%d entries listed\n", len(entries))
	}
	sb.WriteString(listFooter + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
