package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenameReport records what a rename did. Warnings are non-fatal findings
// from the best-effort steps; an empty Warnings means the rename applied
// completely.
type RenameReport struct {
	Moved    []string // destination paths of moved files
	Retagged []string // tags migrated to the new key
	Warnings []string
}

// Rename changes an entry's key across all three representations: the files
// in the primary directory, the bib record's entry key, and every marker in
// the tag tree.
//
// Preconditions fail before any mutation: ErrKeyNotFound if oldKey has no
// entry, ErrKeyCollision if newKey already has an entry or any associated
// file that a move in step 1 would overwrite. After that the steps are
// ordered so an interruption leaves an inspectable state, not silent loss:
//
//  1. Move every file whose name starts with oldKey, replacing only the
//     first occurrence of oldKey in the filename.
//  2. Rewrite the bib record's entry key to newKey (idempotent).
//  3. Replace each marker captured for oldKey before step 1 with the
//     equivalent marker under newKey.
//
// Steps 1 and 3 are best-effort: a failed item becomes a warning and the
// remaining items still run. There is no rollback; partial tag loss is
// preferred over a half-applied rename that blocks forward progress.
func Rename(store *Store, index *Index, oldKey, newKey string) (RenameReport, error) {
	if !ValidKey(newKey) {
		return RenameReport{}, fmt.Errorf("%w: %q", ErrInvalidKey, newKey)
	}

	if !store.Exists(oldKey) {
		return RenameReport{}, fmt.Errorf("%w: %s", ErrKeyNotFound, oldKey)
	}

	// Associated files cover the canonical pair plus auxiliary variants;
	// any of them would be overwritten by the moves below.
	conflicts, conflictsErr := store.AssociatedFiles(newKey)
	if conflictsErr != nil {
		return RenameReport{}, conflictsErr
	}

	if len(conflicts) > 0 {
		return RenameReport{}, fmt.Errorf("%w: %s", ErrKeyCollision, newKey)
	}

	// Capture memberships now: TagsOf depends on store state the moves are
	// about to change.
	tags, tagsErr := index.TagsOf(oldKey)
	if tagsErr != nil {
		return RenameReport{}, tagsErr
	}

	files, filesErr := store.AssociatedFiles(oldKey)
	if filesErr != nil {
		return RenameReport{}, filesErr
	}

	var report RenameReport

	// Step 1: move files first so later steps reference the relocated file.
	for _, src := range files {
		name := filepath.Base(src)
		dst := filepath.Join(store.Dir, strings.Replace(name, oldKey, newKey, 1))

		moveErr := os.Rename(src, dst)
		if moveErr != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not move %s: %v", src, moveErr))

			continue
		}

		report.Moved = append(report.Moved, dst)
	}

	// Step 2: sync the record's entry key to the new filename stem.
	_, syncErr := SyncBibFile(store.BibPath(newKey), newKey)
	if syncErr != nil {
		if errors.Is(syncErr, os.ErrNotExist) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s has no bib record to update", oldKey))
		} else {
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not update bib record: %v", syncErr))
		}
	}

	// Step 3: migrate markers, best-effort per tag.
	for _, tag := range tags {
		removed, untagErr := index.Untag(oldKey, tag)
		if untagErr != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not remove old marker %s/%s: %v", tag, oldKey, untagErr))
		} else if !removed {
			report.Warnings = append(report.Warnings, fmt.Sprintf("old marker %s/%s already gone", tag, oldKey))
		}

		_, tagErr := index.Tag(newKey, tag)
		if tagErr != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not tag %s with %s: %v", newKey, tag, tagErr))

			continue
		}

		report.Retagged = append(report.Retagged, tag)
	}

	return report, nil
}
