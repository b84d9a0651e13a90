package cli

import (
	"ck/internal/library"
)

const checkHelp = `  check                  Report library/index inconsistencies`

// cmdCheck prints the consistency report. The checker itself never fails on
// a finding; this command maps "findings exist" to exit code 1 via the IO
// warning path, which is presentation policy, not core semantics.
func cmdCheck(o *IO, store *library.Store, index *library.Index, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck check")
		o.Println("")
		o.Println("Audit the library and the tag index without changing either:")
		o.Println("keys missing a pdf or bib, markers whose entry is gone, and")
		o.Println("markers stored with non-canonical extension casing.")

		return nil
	}

	report, err := library.Check(store, index)
	if err != nil {
		return err
	}

	if report.Clean() {
		o.Println("No problems found")

		return nil
	}

	for _, key := range report.MissingDoc {
		o.Println("missing pdf:", key)
	}

	for _, key := range report.MissingBib {
		o.Println("missing bib:", key)
	}

	for _, marker := range report.Dangling {
		o.Println("dangling marker:", marker.Tag+"/"+marker.Key)
	}

	for _, marker := range report.BadCasing {
		o.Println("non-canonical extension casing:", marker.Path)
	}

	findings := len(report.MissingDoc) + len(report.MissingBib) +
		len(report.Dangling) + len(report.BadCasing)

	o.Warnf("%d consistency finding(s)", findings)

	return nil
}
