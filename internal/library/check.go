package library

import (
	"sort"
	"strings"
)

// Marker identifies one membership: the marker file at Path relates Key to
// Tag without owning any document bytes.
type Marker struct {
	Key  string
	Tag  string
	Path string
}

// Report is the structured result of a consistency check. All findings are
// data; the caller decides severity and presentation.
type Report struct {
	// MissingDoc lists keys whose .pdf is absent, sorted.
	MissingDoc []string
	// MissingBib lists keys whose .bib is absent, sorted.
	MissingBib []string
	// Dangling lists markers whose entry no longer exists in the store.
	Dangling []Marker
	// BadCasing lists markers stored with a non-lowercase extension.
	BadCasing []Marker
}

// Clean reports whether the check found nothing.
func (r Report) Clean() bool {
	return len(r.MissingDoc) == 0 && len(r.MissingBib) == 0 &&
		len(r.Dangling) == 0 && len(r.BadCasing) == 0
}

// Check audits the store and the tag index and returns a report. It never
// mutates and never aborts on a finding; repair is a separate, operator
// initiated decision.
//
// Two independent passes: pairing (every key has both representation files)
// and tag hygiene (every marker resolves to a live entry and is stored with
// canonical extension casing).
func Check(store *Store, index *Index) (Report, error) {
	var report Report

	keys, err := store.List()
	if err != nil {
		return Report{}, err
	}

	sort.Strings(keys)

	for _, key := range keys {
		entry, infoErr := store.Info(key)
		if infoErr != nil {
			// Listed via a case-insensitive extension match, but neither
			// canonical file exists. Both representations are missing.
			report.MissingDoc = append(report.MissingDoc, key)
			report.MissingBib = append(report.MissingBib, key)

			continue
		}

		if !entry.HasDoc {
			report.MissingDoc = append(report.MissingDoc, key)
		}

		if !entry.HasBib {
			report.MissingBib = append(report.MissingBib, key)
		}
	}

	walkErr := index.walkMarkers(func(m Marker, ext string) {
		if !store.Exists(m.Key) {
			report.Dangling = append(report.Dangling, m)
		}

		if ext != strings.ToLower(ext) {
			report.BadCasing = append(report.BadCasing, m)
		}
	})
	if walkErr != nil {
		return Report{}, walkErr
	}

	return report, nil
}
