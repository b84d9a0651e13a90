package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the naming and lookup oracle over the primary library directory.
// It never mutates anything; creation and deletion live in add.go and the
// rename coordinator.
type Store struct {
	// Dir is the primary directory holding <key>.pdf / <key>.bib pairs.
	Dir string
}

// Entry describes one library entry. Either representation file may be
// absent; absence is reported by the consistency checker, not here.
type Entry struct {
	Key    string
	Doc    string // path to <key>.pdf, whether or not it exists
	Bib    string // path to <key>.bib, whether or not it exists
	HasDoc bool
	HasBib bool
}

// DocPath returns the canonical document path for key. Pure, no I/O.
func (s *Store) DocPath(key string) string {
	return filepath.Join(s.Dir, key+DocExt)
}

// BibPath returns the canonical bib record path for key. Pure, no I/O.
func (s *Store) BibPath(key string) string {
	return filepath.Join(s.Dir, key+BibExt)
}

// Exists reports whether key has at least one representation file.
func (s *Store) Exists(key string) bool {
	_, docErr := os.Stat(s.DocPath(key))
	if docErr == nil {
		return true
	}

	_, bibErr := os.Stat(s.BibPath(key))

	return bibErr == nil
}

// Info returns the entry for key, or ErrKeyNotFound if neither
// representation file exists.
func (s *Store) Info(key string) (Entry, error) {
	entry := Entry{
		Key: key,
		Doc: s.DocPath(key),
		Bib: s.BibPath(key),
	}

	_, docErr := os.Stat(entry.Doc)
	entry.HasDoc = docErr == nil

	_, bibErr := os.Stat(entry.Bib)
	entry.HasBib = bibErr == nil

	if !entry.HasDoc && !entry.HasBib {
		return Entry{}, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return entry, nil
}

// List returns every key in the library, derived by scanning the primary
// directory for recognized extensions and deduplicating stems. Subdirectories
// (including a nested tag dir) are skipped, as are auxiliary variants like
// CMT12.slides.pdf. Order follows directory order; callers sort when order
// matters. A missing library directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading library directory: %w", err)
	}

	var keys []string

	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)

		if stem == "" || strings.Contains(stem, ".") {
			continue
		}

		if !recognizedExt(ext) {
			continue
		}

		if !seen[stem] {
			seen[stem] = true

			keys = append(keys, stem)
		}
	}

	return keys, nil
}

// AssociatedFiles returns the path of every regular file in the primary
// directory whose name is key followed by a dot, covering the canonical pair
// plus auxiliary variants.
func (s *Store) AssociatedFiles(key string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading library directory: %w", err)
	}

	var paths []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.HasPrefix(entry.Name(), key+".") {
			paths = append(paths, filepath.Join(s.Dir, entry.Name()))
		}
	}

	return paths, nil
}

// recognizedExt reports whether ext names one of the two representation
// files. Comparison is case-normalized; canonical storage casing is enforced
// only by the consistency checker.
func recognizedExt(ext string) bool {
	return strings.EqualFold(ext, DocExt) || strings.EqualFold(ext, BibExt)
}
