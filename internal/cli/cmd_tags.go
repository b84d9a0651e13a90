package cli

import (
	"ck/internal/library"
)

const tagsHelp = `  tags [key]             List all tags, or one key's tags`

func cmdTags(o *IO, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck tags [key]")
		o.Println("")
		o.Println("List every tag in the tree, or only the tags of one key.")

		return nil
	}

	var tags []string

	var err error

	if len(args) > 0 {
		tags, err = index.TagsOf(args[0])
	} else {
		tags, err = index.Tags()
	}

	if err != nil {
		return err
	}

	for _, tag := range tags {
		o.Println(tag)
	}

	return nil
}
