package cli

import (
	"os"
	"strings"

	"ck/internal/library"
)

const infoHelp = `  info <key>             Show entry details`

func cmdInfo(o *IO, store *library.Store, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck info <key>")
		o.Println("")
		o.Println("Show the files, tags, and date added for one entry.")

		return nil
	}

	if len(args) == 0 {
		return library.ErrKeyRequired
	}

	key := args[0]

	entry, infoErr := store.Info(key)
	if infoErr != nil {
		return infoErr
	}

	o.Println("key:", entry.Key)

	if entry.HasDoc {
		o.Println("pdf:", entry.Doc)
	} else {
		o.Println("pdf: (missing)")
	}

	if entry.HasBib {
		o.Println("bib:", entry.Bib)
	} else {
		o.Println("bib: (missing)")
	}

	if entry.HasBib {
		record, readErr := os.ReadFile(entry.Bib)
		if readErr == nil {
			if added, ok := library.DateAdded(record); ok {
				o.Println("added:", added)
			}
		}
	}

	tags, tagsErr := index.TagsOf(key)
	if tagsErr != nil {
		return tagsErr
	}

	o.Println("tags:", strings.Join(tags, ", "))

	return nil
}
