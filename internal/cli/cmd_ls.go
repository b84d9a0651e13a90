package cli

import (
	"io"
	"sort"

	"ck/internal/library"

	flag "github.com/spf13/pflag"
)

const lsHelp = `  ls [--untagged]        List citation keys`

func cmdLs(o *IO, store *library.Store, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck ls [--untagged]")
		o.Println("")
		o.Println("List every citation key in the library, sorted.")
		o.Println("Keys missing one of their representation files are annotated.")
		o.Println("")
		o.Println("Options:")
		o.Println("  --untagged  Only keys with no tag anywhere in the tree")

		return nil
	}

	flagSet := flag.NewFlagSet("ls", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	untaggedOnly := flagSet.Bool("untagged", false, "Only untagged keys")

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	keys, listErr := store.List()
	if listErr != nil {
		return listErr
	}

	if *untaggedOnly {
		var filterErr error

		keys, filterErr = index.Untagged(keys)
		if filterErr != nil {
			return filterErr
		}
	}

	sort.Strings(keys)

	for _, key := range keys {
		entry, infoErr := store.Info(key)
		if infoErr != nil {
			continue
		}

		switch {
		case !entry.HasDoc:
			o.Println(key, "(no pdf)")
		case !entry.HasBib:
			o.Println(key, "(no bib)")
		default:
			o.Println(key)
		}
	}

	return nil
}
