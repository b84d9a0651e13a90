package cli

import (
	"strings"

	"ck/internal/library"
)

const tagHelp = `  tag <key> <tag,...>    Tag an entry (tags are paths like queue/to-read)`

func cmdTag(o *IO, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck tag <key> <tag>[,tag...]")
		o.Println("")
		o.Println("Add the entry to one or more tags. Tags are hierarchical")
		o.Println("paths like queue/to-read; intermediate nodes are created as")
		o.Println("needed. Tagging an already-tagged pair is a no-op.")

		return nil
	}

	if len(args) == 0 {
		return library.ErrKeyRequired
	}

	key := args[0]

	tags := library.ParseTags(strings.Join(args[1:], ","))
	if len(tags) == 0 {
		return library.ErrTagRequired
	}

	for _, tag := range tags {
		created, err := index.Tag(key, tag)
		if err != nil {
			return err
		}

		if created {
			o.Println("tagged", key, "with", tag)
		} else {
			o.Println(key, "already tagged with", tag)
		}
	}

	return nil
}
