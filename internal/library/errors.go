package library

import "errors"

// Recognized file extensions, lowercase at the storage boundary.
const (
	DocExt = ".pdf"
	BibExt = ".bib"
)

// Error variables for library operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrLibraryDirEmpty    = errors.New("library-dir cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrKeyNotFound        = errors.New("citation key not found")
	ErrKeyCollision       = errors.New("citation key already exists")
	ErrNotInLibrary       = errors.New("citation key is not in the library")
	ErrInvalidKey         = errors.New("invalid citation key")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrKeyRequired        = errors.New("citation key is required")
	ErrTagRequired        = errors.New("tag is required")
	ErrBibNoEntry         = errors.New("no entry found in bib record")
	ErrNoViewerFound      = errors.New("no viewer found (set config.viewer, $CK_VIEWER, or install xdg-open)")
)
