package queue

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the Jaro-Winkler score a file name must reach to be
// offered as a correction.
const suggestThreshold = 0.85

// Suggest returns the presentation in path's directory whose name is
// closest to path's, or "" when nothing is close enough. Names are compared
// without their extension, ignoring case.
func Suggest(path string) string {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	want := stem(filepath.Base(path))
	var best string
	var bestScore float32
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !IsPresentation(name) || name == filepath.Base(path) {
			continue
		}
		score := edlib.JaroWinklerSimilarity(want, stem(name))
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return filepath.Join(dir, best)
}

func stem(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
}
