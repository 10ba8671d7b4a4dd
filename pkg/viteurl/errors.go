package viteurl

import (
	"errors"
	"fmt"
)

// Errors returned by the helper. Callers match them with errors.Is; the
// returned errors carry the offending path or entry name.
var (
	ErrPublicDirRequired  = errors.New("a public dir is required")
	ErrBuildDirRequired   = errors.New("a build dir is required")
	ErrURLBuilderRequired = errors.New("a server url builder is required")
	ErrManifestNotFound   = errors.New("vite manifest not found")
	ErrManifestUnreadable = errors.New("could not read vite manifest")
	ErrManifestInvalid    = errors.New("could not decode vite manifest")
	ErrUnknownEntrypoint  = errors.New("unknown vite entrypoint")
)

func unknownEntrypoint(name string) error {
	return fmt.Errorf("%w %s", ErrUnknownEntrypoint, name)
}
