package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sidquark/minikv/internal/log"
)

// ErrIO is returned when a snapshot file cannot be opened, read or written.
var ErrIO = errors.New("i/o error")

// Table is the destination of a Load.
type Table interface {
	Clear()
	Put(key, value string) error
}

// Source is anything whose entries can be walked in storage order.
type Source interface {
	Walk(fn func(bucket int, key, value string) bool)
}

// LoadStats summarizes a Load.
type LoadStats struct {
	Loaded    int
	Skipped   int
	Malformed int
}

// Load replaces the contents of t with the entries stored in path.
//
// The table is cleared only once the file has been opened. Blank, comment
// and malformed lines are ignored. Load is not transactional: if a later
// line fails to be stored the table keeps what was loaded so far.
func Load(t Table, path string) (LoadStats, error) {
	var stats LoadStats

	file, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("failed to open snapshot file: %w: %w", ErrIO, err)
	}
	defer file.Close()

	t.Clear()

	reader := bufio.NewReader(file)
	lineNum := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return stats, fmt.Errorf("failed to read snapshot file at line %d: %w: %w", lineNum+1, ErrIO, err)
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNum++

		key, value, kind := ParseLine(line)
		switch kind {
		case LineSkip:
			stats.Skipped++
		case LineMalformed:
			stats.Malformed++
			log.Persistence.Debug().
				Str("path", path).
				Int("line", lineNum).
				Msg("skipping malformed line")
		case LineEntry:
			if err := t.Put(key, value); err != nil {
				return stats, fmt.Errorf("failed to store key %q from line %d: %w", key, lineNum, err)
			}
			stats.Loaded++
		}

		if err == io.EOF {
			break
		}
	}

	log.Persistence.Info().
		Str("path", path).
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Int("malformed", stats.Malformed).
		Msg("snapshot loaded")

	return stats, nil
}

// Save writes every entry of src to path as key=value lines, truncating any
// existing content. Entries appear in storage order, not sorted.
func Save(src Source, path string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot file: %w: %w", ErrIO, err)
	}

	written, err := Write(file, src)
	if err != nil {
		file.Close()
		return written, err
	}

	if err := file.Close(); err != nil {
		return written, fmt.Errorf("failed to close snapshot file: %w: %w", ErrIO, err)
	}

	log.Persistence.Info().
		Str("path", path).
		Int("entries", written).
		Msg("snapshot saved")

	return written, nil
}

// Write encodes every entry of src to w and returns the number of entries
// written.
func Write(w io.Writer, src Source) (int, error) {
	writer := bufio.NewWriter(w)

	var (
		written  int
		writeErr error
	)
	src.Walk(func(_ int, key, value string) bool {
		if _, err := writer.WriteString(FormatLine(key, value)); err != nil {
			writeErr = err
			return false
		}
		written++
		return true
	})
	if writeErr != nil {
		return written, fmt.Errorf("failed to write snapshot: %w: %w", ErrIO, writeErr)
	}

	// Flush buffered lines
	if err := writer.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush snapshot: %w: %w", ErrIO, err)
	}
	return written, nil
}
