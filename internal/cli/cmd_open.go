package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"ck/internal/library"
)

const openHelp = `  open <key>             Open the document in a PDF viewer`

// resolveViewer checks for an available viewer using the env map.
// Priority: config.Viewer -> $CK_VIEWER -> xdg-open -> open -> error.
func resolveViewer(cfg library.Config, env map[string]string) (string, error) {
	if cfg.Viewer != "" {
		_, lookErr := exec.LookPath(cfg.Viewer)
		if lookErr == nil {
			return cfg.Viewer, nil
		}
	}

	if viewer := env["CK_VIEWER"]; viewer != "" {
		_, lookErr := exec.LookPath(viewer)
		if lookErr == nil {
			return viewer, nil
		}
	}

	_, xdgErr := exec.LookPath("xdg-open")
	if xdgErr == nil {
		return "xdg-open", nil
	}

	_, openErr := exec.LookPath("open")
	if openErr == nil {
		return "open", nil
	}

	return "", library.ErrNoViewerFound
}

func cmdOpen(o *IO, cfg library.Config, store *library.Store, args []string, env map[string]string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: ck open <key>")
		o.Println("")
		o.Println("Open the entry's document in your PDF viewer.")

		return nil
	}

	if len(args) == 0 {
		return library.ErrKeyRequired
	}

	key := args[0]

	entry, infoErr := store.Info(key)
	if infoErr != nil {
		return infoErr
	}

	if !entry.HasDoc {
		return fmt.Errorf("%w: %s has no pdf", library.ErrKeyNotFound, key)
	}

	viewer, resolveErr := resolveViewer(cfg, env)
	if resolveErr != nil {
		return resolveErr
	}

	cmd := exec.Command(viewer, entry.Doc)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return fmt.Errorf("viewer exited with status %d", exitErr.ExitCode())
		}

		return fmt.Errorf("failed to run viewer: %w", runErr)
	}

	return nil
}
