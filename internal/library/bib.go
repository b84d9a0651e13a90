package library

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// The bib record is opaque payload except for two things the core owns: the
// entry key in the @type{key, header (must equal the filename stem) and the
// ckdateadded timestamp field. Everything else round-trips byte-for-byte.

// dateAddedField is the bib field recording when an entry joined the library.
const dateAddedField = "ckdateadded"

// dateAddedLayout matches the original tool's timestamp format.
const dateAddedLayout = "2006-01-02 15:04:05"

// BibKey extracts the entry key from a bib record.
func BibKey(record []byte) (string, error) {
	_, keyStart, keyEnd, err := bibKeySpan(record)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(record[keyStart:keyEnd])), nil
}

// SyncBibKey rewrites the record's entry key to key, leaving every other
// byte untouched. Returns the record and whether it changed. Idempotent.
func SyncBibKey(record []byte, key string) ([]byte, bool, error) {
	_, keyStart, keyEnd, err := bibKeySpan(record)
	if err != nil {
		return nil, false, err
	}

	current := string(bytes.TrimSpace(record[keyStart:keyEnd]))
	if current == key {
		return record, false, nil
	}

	updated := make([]byte, 0, len(record)-keyEnd+keyStart+len(key))
	updated = append(updated, record[:keyStart]...)
	updated = append(updated, key...)
	updated = append(updated, record[keyEnd:]...)

	return updated, true, nil
}

// EnsureDateAdded inserts a ckdateadded field right after the entry header
// when the record has none. Returns the record and whether it changed.
func EnsureDateAdded(record []byte, now time.Time) ([]byte, bool) {
	if hasDateAdded(record) {
		return record, false
	}

	_, _, keyEnd, err := bibKeySpan(record)
	if err != nil {
		return record, false
	}

	// Insert after the comma terminating the header, or after the key if
	// the record has no fields yet.
	insertAt := keyEnd
	if insertAt < len(record) && record[insertAt] == ',' {
		insertAt++
	}

	field := fmt.Sprintf("\n  %s = {%s},", dateAddedField, now.Format(dateAddedLayout))

	updated := make([]byte, 0, len(record)+len(field))
	updated = append(updated, record[:insertAt]...)
	updated = append(updated, field...)
	updated = append(updated, record[insertAt:]...)

	return updated, true
}

// hasDateAdded reports whether the record carries a ckdateadded field.
// Matched as a field name at the start of a line followed by "=", so the
// text appearing inside a title or URL does not count.
func hasDateAdded(record []byte) bool {
	for _, line := range strings.Split(string(record), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(trimmed), dateAddedField) {
			continue
		}

		rest := strings.TrimSpace(trimmed[len(dateAddedField):])
		if strings.HasPrefix(rest, "=") {
			return true
		}
	}

	return false
}

// DateAdded reads the ckdateadded field value, if present.
func DateAdded(record []byte) (string, bool) {
	for _, line := range strings.Split(string(record), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(trimmed), dateAddedField) {
			continue
		}

		rest := strings.TrimSpace(trimmed[len(dateAddedField):])
		if !strings.HasPrefix(rest, "=") {
			continue
		}

		rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
		rest = strings.Trim(rest, "{},\"")

		return rest, rest != ""
	}

	return "", false
}

// SyncBibFile rewrites the entry key in the bib file at path to key.
// Safe to re-run; a record already carrying the key is left alone.
func SyncBibFile(path, key string) (bool, error) {
	record, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading bib record: %w", err)
	}

	updated, changed, syncErr := SyncBibKey(record, key)
	if syncErr != nil {
		return false, fmt.Errorf("%s: %w", path, syncErr)
	}

	if !changed {
		return false, nil
	}

	writeErr := atomic.WriteFile(path, bytes.NewReader(updated))
	if writeErr != nil {
		return false, fmt.Errorf("writing bib record: %w", writeErr)
	}

	return true, nil
}

// bibKeySpan locates the entry key in a record shaped like @type{key, and
// returns the offsets of the opening brace and the key's byte span.
func bibKeySpan(record []byte) (int, int, int, error) {
	at := bytes.IndexByte(record, '@')
	if at < 0 {
		return 0, 0, 0, ErrBibNoEntry
	}

	brace := bytes.IndexAny(record[at:], "{(")
	if brace < 0 {
		return 0, 0, 0, ErrBibNoEntry
	}

	keyStart := at + brace + 1

	end := bytes.IndexAny(record[keyStart:], ",\n}")
	if end < 0 {
		end = len(record) - keyStart
	}

	return at + brace, keyStart, keyStart + end, nil
}
