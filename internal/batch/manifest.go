// internal/batch/manifest.go
package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/slidemerge/internal/merge"
	"github.com/vmunix/slidemerge/internal/queue"
)

// Job is one merge in a manifest.
type Job struct {
	Name    string   `toml:"name"`
	Output  string   `toml:"output"`
	Sources []string `toml:"sources"`
}

// Manifest lists the jobs of a batch run, in file order.
type Manifest struct {
	Jobs []Job `toml:"job"`
}

// LoadManifest reads a TOML manifest of [[job]] tables. Relative paths
// are taken from the manifest's directory, output names are resolved the
// same way the merge command resolves them, and jobs without a name are
// named after their output file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrManifest, undecoded[0])
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("%w: no [[job]] entries", ErrManifest)
	}

	base := filepath.Dir(path)
	var errs []error
	outputs := make(map[string]int, len(m.Jobs))
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if err := job.resolve(base); err != nil {
			errs = append(errs, fmt.Errorf("job %d: %w", i+1, err))
			continue
		}
		key := queue.Key(job.Output)
		if prev, ok := outputs[key]; ok {
			errs = append(errs, fmt.Errorf("job %d: output %s already written by job %d", i+1, job.Output, prev))
			continue
		}
		outputs[key] = i + 1
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrManifest, errors.Join(errs...))
	}
	return &m, nil
}

func (j *Job) resolve(base string) error {
	if strings.TrimSpace(j.Output) == "" {
		return errors.New("output is required")
	}
	if len(j.Sources) == 0 {
		return errors.New("sources are required")
	}

	output, err := merge.ResolveOutputPath(relativeTo(base, j.Output))
	if err != nil {
		return err
	}
	j.Output = output
	for i, src := range j.Sources {
		j.Sources[i] = relativeTo(base, src)
	}
	if j.Name == "" {
		j.Name = strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	}
	return nil
}

func relativeTo(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
