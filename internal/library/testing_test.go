package library

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// newTestLibrary returns a store and index rooted in a temp directory, with
// the tag tree nested under the library dir like the default layout.
func newTestLibrary(t *testing.T) (*Store, *Index) {
	t.Helper()

	dir := t.TempDir()
	store := &Store{Dir: filepath.Join(dir, "library")}
	index := &Index{Dir: filepath.Join(store.Dir, "tags"), Store: store}

	mkdirErr := os.MkdirAll(store.Dir, dirPerms)
	if mkdirErr != nil {
		t.Fatalf("failed to create library dir: %v", mkdirErr)
	}

	return store, index
}

// writeEntry creates the canonical pdf+bib pair for key.
func writeEntry(t *testing.T, store *Store, key string) {
	t.Helper()

	writeDoc(t, store, key)
	writeBib(t, store, key)
}

func writeDoc(t *testing.T, store *Store, key string) {
	t.Helper()

	writeFile(t, store.DocPath(key), "%PDF-1.4 stub for "+key)
}

func writeBib(t *testing.T, store *Store, key string) {
	t.Helper()

	record := fmt.Sprintf("@article{%s,\n  title = {Paper %s},\n}\n", key, key)
	writeFile(t, store.BibPath(key), record)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), filePerms)
	if err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	return string(content)
}
