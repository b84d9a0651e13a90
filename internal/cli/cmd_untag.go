package cli

import (
	"io"
	"strings"

	"ck/internal/library"

	flag "github.com/spf13/pflag"
)

const untagHelp = `  untag <key> <tag,...>  Remove tags from an entry
    --all                  Remove every tag (prompts unless --force)`

func cmdUntag(o *IO, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		printUntagHelp(o)

		return nil
	}

	flagSet := flag.NewFlagSet("untag", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	allFlag := flagSet.Bool("all", false, "Remove every tag for the key")
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

	if *allFlag {
		if !*force && !confirm("Remove every tag from "+key+"?") {
			o.Println("aborted")

			return nil
		}

		removed, err := index.UntagAll(key)
		if err != nil {
			return err
		}

		for _, tag := range removed {
			o.Println("untagged", key, "from", tag)
		}

		if len(removed) == 0 {
			o.Println(key, "has no tags")
		}

		return nil
	}

	tags := library.ParseTags(strings.Join(remaining[1:], ","))
	if len(tags) == 0 {
		return library.ErrTagRequired
	}

	for _, tag := range tags {
		removed, err := index.Untag(key, tag)
		if err != nil {
			return err
		}

		if removed {
			o.Println("untagged", key, "from", tag)
		} else {
			o.Println(key, "not tagged with", tag)
		}
	}

	return nil
}

func printUntagHelp(o *IO) {
	o.Println("Usage: ck untag <key> <tag>[,tag...]")
	o.Println("       ck untag --all <key>")
	o.Println("")
	o.Println("Remove the entry from tags. Untagging a pair that is not")
	o.Println("tagged is a no-op, not an error.")
	o.Println("")
	o.Println("Options:")
	o.Println("  --all        Remove every tag across the whole tree")
	o.Println("  -f, --force  Skip the --all confirmation prompt")
}
