package cli

import (
	"io"

	"ck/internal/library"

	flag "github.com/spf13/pflag"
)

const rmHelp = `  rm <key> [--force]     Remove an entry and all its tags`

func cmdRm(o *IO, store *library.Store, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck rm <key> [--force]")
		o.Println("")
		o.Println("Delete an entry: every tag marker first, then every file")
		o.Println("sharing the key as filename prefix.")
		o.Println("")
		o.Println("Options:")
		o.Println("  -f, --force  Skip confirmation")

		return nil
	}

	flagSet := flag.NewFlagSet("rm", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	force := flagSet.BoolP("force", "f", false, "Skip confirmation")

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	remaining := flagSet.Args()
	if len(remaining) == 0 {
		return library.ErrKeyRequired
	}

	key := remaining[0]

	if !*force && !confirm("Remove "+key+" and all its tags?") {
		o.Println("aborted")

		return nil
	}

	removed, err := library.Remove(store, index, key)
	if err != nil {
		return err
	}

	for _, path := range removed {
		o.Println("removed", path)
	}

	return nil
}
