package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"ck/internal/cli"
)

func Test_Rm_Requires_Key(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("rm", "--force")
	cli.AssertContains(t, stderr, "citation key is required")
}

func Test_Rm_Unknown_Key(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("rm", "--force", "Ghost")
	cli.AssertContains(t, stderr, "citation key not found")
}

func Test_Rm_Cascades_Tags_And_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.AddEntry("ABC19")
	c.AddEntry("XYZ20")

	// An auxiliary file shares the key prefix and must go with the entry.
	aux := filepath.Join(c.LibraryDir(), "ABC19.slides.pdf")

	writeErr := os.WriteFile(aux, []byte("%PDF"), 0o600)
	if writeErr != nil {
		t.Fatalf("write failed: %v", writeErr)
	}

	c.MustRun("tag", "ABC19", "crypto,queue/to-read")
	c.MustRun("tag", "XYZ20", "crypto")

	stdout := c.MustRun("rm", "--force", "ABC19")
	cli.AssertContains(t, stdout, "removed")

	stdout = c.MustRun("ls")
	cli.AssertNotContains(t, stdout, "ABC19")
	cli.AssertContains(t, stdout, "XYZ20")

	for _, name := range []string{"ABC19.pdf", "ABC19.bib", "ABC19.slides.pdf"} {
		_, statErr := os.Stat(filepath.Join(c.LibraryDir(), name))
		if !os.IsNotExist(statErr) {
			t.Errorf("%s should be gone, stat err = %v", name, statErr)
		}
	}

	// No dangling markers left behind.
	stdout = c.MustRun("check")
	cli.AssertContains(t, stdout, "No problems found")

	// The other entry's marker is untouched.
	_, lstatErr := os.Lstat(filepath.Join(c.TagDir(), "crypto", "XYZ20.pdf"))
	if lstatErr != nil {
		t.Errorf("XYZ20 marker should survive: %v", lstatErr)
	}
}
