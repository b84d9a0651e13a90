package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index is the hierarchical tag tree over the library. Each tag is a
// directory path under Dir; each membership is one marker file
// <tag-path>/<key>.pdf, a symlink referencing the canonical document in the
// store. Markers relate, they never own bytes.
//
// All reverse lookups (TagsOf, KeysFor, Untagged) do a full tree walk
// instead of maintaining a reverse index. At library scales of hundreds to
// low thousands of entries the walk is cheap, and keeping the filesystem as
// the single source of truth avoids a second structure that can drift.
type Index struct {
	Dir   string
	Store *Store
}

const tagDirPerms = 0o750

// Tag adds key to the tag, creating intermediate tag nodes as needed.
// Returns created=false with no error when the marker already exists; that
// is a benign signal for the caller's messaging, not a fault.
// Fails with ErrNotInLibrary when the key has no entry in the store.
func (x *Index) Tag(key, tag string) (bool, error) {
	if !ValidTag(tag) {
		return false, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	if !x.Store.Exists(key) {
		return false, fmt.Errorf("%w: %s", ErrNotInLibrary, key)
	}

	tagDir := filepath.Join(x.Dir, filepath.FromSlash(tag))

	mkdirErr := os.MkdirAll(tagDir, tagDirPerms)
	if mkdirErr != nil {
		return false, fmt.Errorf("creating tag directory: %w", mkdirErr)
	}

	marker := filepath.Join(tagDir, key+DocExt)

	linkErr := os.Symlink(x.Store.DocPath(key), marker)
	if linkErr != nil {
		if os.IsExist(linkErr) {
			return false, nil
		}

		return false, fmt.Errorf("creating marker: %w", linkErr)
	}

	return true, nil
}

// Untag removes the marker for (key, tag). Returns removed=false with no
// error when the marker does not exist.
func (x *Index) Untag(key, tag string) (bool, error) {
	if !ValidTag(tag) {
		return false, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	marker := filepath.Join(x.Dir, filepath.FromSlash(tag), key+DocExt)

	removeErr := os.Remove(marker)
	if removeErr != nil {
		if os.IsNotExist(removeErr) {
			return false, nil
		}

		return false, fmt.Errorf("removing marker: %w", removeErr)
	}

	return true, nil
}

// UntagAll removes every marker for key across the whole tree and returns
// the tags it was removed from, sorted. Whether to confirm first is the
// caller's policy.
func (x *Index) UntagAll(key string) ([]string, error) {
	tags, err := x.TagsOf(key)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		_, untagErr := x.Untag(key, tag)
		if untagErr != nil {
			return nil, untagErr
		}
	}

	return tags, nil
}

// Tags returns every tag node in the tree, sorted. Intermediate nodes count:
// tagging under queue/to-read makes both queue and queue/to-read listable.
func (x *Index) Tags() ([]string, error) {
	var tags []string

	err := filepath.WalkDir(x.Dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) && path == x.Dir {
				return nil
			}

			return walkErr
		}

		if !entry.IsDir() || path == x.Dir {
			return nil
		}

		rel, relErr := filepath.Rel(x.Dir, path)
		if relErr != nil {
			return relErr
		}

		tags = append(tags, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking tag tree: %w", err)
	}

	sort.Strings(tags)

	return tags, nil
}

// TagsOf returns the sorted set of tags holding a marker for key.
// Dangling markers still count here; only the checker flags them.
func (x *Index) TagsOf(key string) ([]string, error) {
	var tags []string

	err := x.walkMarkers(func(m Marker, _ string) {
		if m.Key == key {
			tags = append(tags, m.Tag)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(tags)

	return tags, nil
}

// KeysFor returns the sorted set of keys tagged with tag.
func (x *Index) KeysFor(tag string) ([]string, error) {
	var keys []string

	err := x.walkMarkers(func(m Marker, _ string) {
		if m.Tag == tag {
			keys = append(keys, m.Key)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)

	return keys, nil
}

// Untagged filters keys down to those with no marker anywhere in the tree,
// preserving input order.
func (x *Index) Untagged(keys []string) ([]string, error) {
	tagged := make(map[string]bool)

	err := x.walkMarkers(func(m Marker, _ string) {
		tagged[m.Key] = true
	})
	if err != nil {
		return nil, err
	}

	var untagged []string

	for _, key := range keys {
		if !tagged[key] {
			untagged = append(untagged, key)
		}
	}

	return untagged, nil
}

// walkMarkers visits every marker in the tag tree. ext carries the marker's
// extension as stored, so the checker can flag non-canonical casing.
// Files directly under the index root have no tag and are ignored.
// A missing index directory is an empty tree, not an error.
func (x *Index) walkMarkers(visit func(m Marker, ext string)) error {
	err := filepath.WalkDir(x.Dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) && path == x.Dir {
				return nil
			}

			return walkErr
		}

		if entry.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(x.Dir, path)
		if relErr != nil {
			return relErr
		}

		tag := filepath.ToSlash(filepath.Dir(rel))
		if tag == "." {
			return nil
		}

		name := filepath.Base(rel)
		ext := filepath.Ext(name)

		if !strings.EqualFold(ext, DocExt) {
			return nil
		}

		visit(Marker{
			Key:  strings.TrimSuffix(name, ext),
			Tag:  tag,
			Path: path,
		}, ext)

		return nil
	})
	if err != nil {
		return fmt.Errorf("walking tag tree: %w", err)
	}

	return nil
}
