package library

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Add allocates key and writes its document and bib record, rejecting on
// collision. The bib record's entry key is synced to key and a ckdateadded
// field is inserted when absent; all other record bytes pass through
// unchanged. This is the entry point acquisition tooling calls into.
func Add(store *Store, key string, doc []byte, record []byte, now time.Time) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if store.Exists(key) {
		return fmt.Errorf("%w: %s", ErrKeyCollision, key)
	}

	synced, _, syncErr := SyncBibKey(record, key)
	if syncErr != nil {
		return syncErr
	}

	synced, _ = EnsureDateAdded(synced, now)

	mkdirErr := os.MkdirAll(store.Dir, dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("creating library directory: %w", mkdirErr)
	}

	docPath := store.DocPath(key)

	writeErr := atomic.WriteFile(docPath, bytes.NewReader(doc))
	if writeErr != nil {
		return fmt.Errorf("writing document: %w", writeErr)
	}

	// atomic.WriteFile doesn't set permissions for new files
	chmodErr := os.Chmod(docPath, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("setting document permissions: %w", chmodErr)
	}

	bibPath := store.BibPath(key)

	writeErr = atomic.WriteFile(bibPath, bytes.NewReader(synced))
	if writeErr != nil {
		return fmt.Errorf("writing bib record: %w", writeErr)
	}

	chmodErr = os.Chmod(bibPath, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("setting bib permissions: %w", chmodErr)
	}

	return nil
}

// Remove deletes the entry for key: every marker across the tag tree first,
// then every associated file in the primary directory. Returns the removed
// file paths. Confirmation is the caller's policy.
func Remove(store *Store, index *Index, key string) ([]string, error) {
	if !store.Exists(key) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	_, untagErr := index.UntagAll(key)
	if untagErr != nil {
		return nil, untagErr
	}

	files, listErr := store.AssociatedFiles(key)
	if listErr != nil {
		return nil, listErr
	}

	var removed []string

	for _, path := range files {
		removeErr := os.Remove(path)
		if removeErr != nil {
			return removed, fmt.Errorf("removing %s: %w", path, removeErr)
		}

		removed = append(removed, path)
	}

	return removed, nil
}
