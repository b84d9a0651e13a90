package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ck/internal/library"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Default workDir to current directory
	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	// Load and validate config
	overrides := library.Overrides{LibraryDir: flags.libraryDir, TagDir: flags.tagDir}

	cfg, sources, err := library.LoadConfig(workDir, flags.configPath, overrides, env)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	// Resolve both directories to absolute paths
	libraryDir := cfg.LibraryDir
	if !filepath.IsAbs(libraryDir) {
		libraryDir = filepath.Join(workDir, libraryDir)
	}

	tagDir := cfg.TagDir
	if tagDir == "" {
		tagDir = library.DefaultTagDir(libraryDir)
	} else if !filepath.IsAbs(tagDir) {
		tagDir = filepath.Join(workDir, tagDir)
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	cmdArgs := flags.remaining[1:]

	// Handle help flags
	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	store := &library.Store{Dir: libraryDir}
	index := &library.Index{Dir: tagDir, Store: store}

	// Create IO for command
	ioCtx := NewIO(out, errOut)

	// Dispatch to command
	var cmdErr error

	switch cmd {
	case "add":
		cmdErr = cmdAdd(ioCtx, in, store, cmdArgs)
	case "ls":
		cmdErr = cmdLs(ioCtx, store, index, cmdArgs)
	case "info":
		cmdErr = cmdInfo(ioCtx, store, index, cmdArgs)
	case "tags":
		cmdErr = cmdTags(ioCtx, index, cmdArgs)
	case "tag":
		cmdErr = cmdTag(ioCtx, index, cmdArgs)
	case "untag":
		cmdErr = cmdUntag(ioCtx, index, cmdArgs)
	case "mv":
		cmdErr = cmdMv(ioCtx, store, index, cmdArgs)
	case "rm":
		cmdErr = cmdRm(ioCtx, store, index, cmdArgs)
	case "check":
		cmdErr = cmdCheck(ioCtx, store, index, cmdArgs)
	case "open":
		cmdErr = cmdOpen(ioCtx, cfg, store, cmdArgs, env)
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	// Fatal error
	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	// Finish handles warnings and exit code
	return ioCtx.Finish()
}

type globalFlags struct {
	workDir    string
	configPath string
	libraryDir string
	tagDir     string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", library.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --library-dir flag
	if arg == "--library-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", library.ErrFlagRequiresArg, arg)
		}

		flags.libraryDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--library-dir="); ok {
		flags.libraryDir = after

		return consumedOne, nil
	}

	// --tag-dir flag
	if arg == "--tag-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", library.ErrFlagRequiresArg, arg)
		}

		flags.tagDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--tag-dir="); ok {
		flags.tagDir = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", library.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(o *IO, cfg library.Config, sources library.ConfigSources) error {
	formatted, err := library.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	// Print sources
	o.Println("")
	o.Println("# Sources:")

	if sources.Global != "" {
		o.Println("#   global:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `ck - citation key library manager

Usage: ck [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  --library-dir      Override library directory
  --tag-dir          Override tag directory

Commands:`)
	fprintln(writer, addHelp)
	fprintln(writer, lsHelp)
	fprintln(writer, infoHelp)
	fprintln(writer, tagsHelp)
	fprintln(writer, tagHelp)
	fprintln(writer, untagHelp)
	fprintln(writer, mvHelp)
	fprintln(writer, rmHelp)
	fprintln(writer, checkHelp)
	fprintln(writer, openHelp)
	fprintln(writer, `  print-config           Show resolved configuration`)
}
