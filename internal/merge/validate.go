package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/slidemerge/internal/queue"
)

// validate checks a request without touching the host and returns the
// absolute source and output paths.
func validate(req Request) ([]string, string, error) {
	var errs []error

	if len(req.Sources) == 0 {
		errs = append(errs, errors.New("no source files"))
	}

	sources := make([]string, 0, len(req.Sources))
	keys := make(map[string]bool, len(req.Sources))
	for _, src := range req.Sources {
		abs, err := queue.Check(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", src, err))
			continue
		}
		sources = append(sources, abs)
		keys[queue.Key(abs)] = true
	}

	output, err := validateOutput(req.Output)
	if err != nil {
		errs = append(errs, err)
	} else if keys[queue.Key(output)] {
		errs = append(errs, fmt.Errorf("output %s is also a source", filepath.Base(output)))
	}

	if len(errs) > 0 {
		return nil, "", fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
	}
	return sources, output, nil
}

func validateOutput(path string) (string, error) {
	if path == "" {
		return "", errors.New("no output path")
	}
	if !queue.IsPresentation(path) {
		return "", fmt.Errorf("output %s: unsupported format (want %v)", filepath.Base(path), queue.Extensions)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("output %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output directory %s is not a directory", dir)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", fmt.Errorf("output %s is a directory", abs)
	}
	return abs, nil
}
