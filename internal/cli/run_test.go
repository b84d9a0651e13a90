package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"ck/internal/cli"
)

func Test_No_Args_Prints_Usage(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, _, exitCode := c.Run()

	if exitCode != 0 {
		t.Errorf("exitCode=%d, want 0", exitCode)
	}

	cli.AssertContains(t, stdout, "citation key library manager")
	cli.AssertContains(t, stdout, "Commands:")
}

func Test_Unknown_Command_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	_, stderr, exitCode := c.Run("bogus")

	if exitCode != 1 {
		t.Errorf("exitCode=%d, want 1", exitCode)
	}

	cli.AssertContains(t, stderr, "unknown command: bogus")
}

func Test_Unknown_Global_Flag_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--bogus", "ls")
	cli.AssertContains(t, stderr, "unknown flag")
}

func Test_Library_Dir_Override(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	altDir := filepath.Join(c.Dir, "elsewhere")

	mkdirErr := os.MkdirAll(altDir, 0o750)
	if mkdirErr != nil {
		t.Fatalf("mkdir failed: %v", mkdirErr)
	}

	for _, name := range []string{"ABC19.pdf", "ABC19.bib"} {
		writeErr := os.WriteFile(filepath.Join(altDir, name), []byte("stub"), 0o600)
		if writeErr != nil {
			t.Fatalf("write failed: %v", writeErr)
		}
	}

	stdout := c.MustRun("--library-dir", altDir, "ls")
	cli.AssertContains(t, stdout, "ABC19")

	// Without the override the default library is empty.
	stdout = c.MustRun("ls")
	cli.AssertNotContains(t, stdout, "ABC19")
}

func Test_Tag_Dir_Override(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.AddEntry("ABC19")

	altTags := filepath.Join(c.Dir, "my-tags")

	c.MustRun("--tag-dir", altTags, "tag", "ABC19", "crypto")

	_, lstatErr := os.Lstat(filepath.Join(altTags, "crypto", "ABC19.pdf"))
	if lstatErr != nil {
		t.Errorf("marker should live under the overridden tag dir: %v", lstatErr)
	}
}

func Test_Project_Config_Is_Picked_Up(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	config := `{
  // keep papers next to the notes
  "library_dir": "papers",
}`

	writeErr := os.WriteFile(filepath.Join(c.Dir, ".ck.json"), []byte(config), 0o600)
	if writeErr != nil {
		t.Fatalf("write failed: %v", writeErr)
	}

	papers := filepath.Join(c.Dir, "papers")

	mkdirErr := os.MkdirAll(papers, 0o750)
	if mkdirErr != nil {
		t.Fatalf("mkdir failed: %v", mkdirErr)
	}

	for _, name := range []string{"ABC19.pdf", "ABC19.bib"} {
		writeErr := os.WriteFile(filepath.Join(papers, name), []byte("stub"), 0o600)
		if writeErr != nil {
			t.Fatalf("write failed: %v", writeErr)
		}
	}

	stdout := c.MustRun("ls")
	cli.AssertContains(t, stdout, "ABC19")
}

func Test_Print_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, `"library_dir"`)
	cli.AssertContains(t, stdout, "(using defaults only)")
}

func Test_Command_Help_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("add", "--help")
	cli.AssertContains(t, stdout, "Usage: ck add")
}
