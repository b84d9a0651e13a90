package cli

import (
	"ck/internal/library"
)

const mvHelp = `  mv <old> <new>         Rename a citation key everywhere`

func cmdMv(o *IO, store *library.Store, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck mv <old-key> <new-key>")
		o.Println("")
		o.Println("Rename a key: moves every file sharing the key as filename")
		o.Println("prefix, rewrites the bib record's entry key, and migrates")
		o.Println("every tag marker. Fails before touching anything if <old-key>")
		o.Println("is missing or <new-key> is taken. Later steps are best-effort;")
		o.Println("partial failures are reported as warnings, not rolled back.")

		return nil
	}

	const wantArgs = 2
	if len(args) < wantArgs {
		return library.ErrKeyRequired
	}

	oldKey, newKey := args[0], args[1]

	report, err := library.Rename(store, index, oldKey, newKey)
	if err != nil {
		return err
	}

	for _, path := range report.Moved {
		o.Println("moved", path)
	}

	for _, tag := range report.Retagged {
		o.Println("retagged", newKey, "under", tag)
	}

	for _, warning := range report.Warnings {
		o.Warn(warning)
	}

	o.Println("renamed", oldKey, "->", newKey)

	return nil
}
