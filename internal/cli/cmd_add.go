package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"ck/internal/library"

	flag "github.com/spf13/pflag"
)

const addHelp = `  add <key> <pdf> [bib]  Add an entry under a citation key
    bib defaults to "-" (read the record from stdin)`

func cmdAdd(o *IO, in io.Reader, store *library.Store, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck add <key> <pdf> [bib]")
		o.Println("")
		o.Println("Add a document and its bib record under <key>.")
		o.Println("The record's entry key is synced to <key> and a ckdateadded")
		o.Println("field is inserted when missing. Fails if <key> already exists.")
		o.Println("")
		o.Println("Pass \"-\" (or nothing) as bib to read the record from stdin.")

		return nil
	}

	flagSet := flag.NewFlagSet("add", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	remaining := flagSet.Args()

	const minPositional = 2
	if len(remaining) < minPositional {
		return fmt.Errorf("%w: usage: ck add <key> <pdf> [bib]", library.ErrKeyRequired)
	}

	key := remaining[0]
	pdfPath := remaining[1]

	bibPath := "-"
	if len(remaining) > minPositional {
		bibPath = remaining[2]
	}

	doc, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		return fmt.Errorf("reading document: %w", readErr)
	}

	var record []byte

	if bibPath == "-" {
		var stdinErr error

		record, stdinErr = io.ReadAll(in)
		if stdinErr != nil {
			return fmt.Errorf("reading bib record from stdin: %w", stdinErr)
		}
	} else {
		var bibErr error

		record, bibErr = os.ReadFile(bibPath)
		if bibErr != nil {
			return fmt.Errorf("reading bib record: %w", bibErr)
		}
	}

	addErr := library.Add(store, key, doc, record, time.Now())
	if addErr != nil {
		return addErr
	}

	o.Println(key)

	return nil
}
