// Package queue holds the ordered list of presentations to merge.
package queue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Extensions lists the accepted presentation file extensions.
var Extensions = []string{".pptx", ".ppsx"}

// Reason says why a path was not queued.
type Reason int

const (
	RejectDuplicate Reason = iota + 1
	RejectInvalidType
	RejectMissing
)

func (r Reason) String() string {
	switch r {
	case RejectDuplicate:
		return "duplicate"
	case RejectInvalidType:
		return "invalid type"
	case RejectMissing:
		return "missing"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Rejection reports a path Add refused.
type Rejection struct {
	Path   string
	Reason Reason
	Err    error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: %v", r.Path, r.Err)
}

func (r Rejection) Unwrap() error { return r.Err }

// Queue is an ordered, duplicate-free list of presentation paths.
// It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	paths []string
	keys  []string
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Add appends each acceptable path in order and returns the ones it
// refused. One bad path never prevents the others from being added.
func (q *Queue) Add(paths ...string) []Rejection {
	q.mu.Lock()
	defer q.mu.Unlock()

	var rejected []Rejection
	for _, p := range paths {
		abs, err := Check(p)
		if err != nil {
			reason := RejectMissing
			if errors.Is(err, ErrUnsupportedType) {
				reason = RejectInvalidType
			}
			rejected = append(rejected, Rejection{Path: p, Reason: reason, Err: err})
			continue
		}
		key := Key(abs)
		if slices.Contains(q.keys, key) {
			rejected = append(rejected, Rejection{Path: p, Reason: RejectDuplicate, Err: ErrDuplicate})
			continue
		}
		q.paths = append(q.paths, abs)
		q.keys = append(q.keys, key)
	}
	return rejected
}

// Remove drops path from the queue. Unknown paths are ignored.
func (q *Queue) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	key := Key(abs)

	q.mu.Lock()
	defer q.mu.Unlock()
	if i := slices.Index(q.keys, key); i >= 0 {
		q.removeAt(i)
	}
}

// RemoveAt drops the entry at index. Out of range indexes are ignored.
func (q *Queue) RemoveAt(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index >= 0 && index < len(q.paths) {
		q.removeAt(index)
	}
}

func (q *Queue) removeAt(i int) {
	q.paths = slices.Delete(q.paths, i, i+1)
	q.keys = slices.Delete(q.keys, i, i+1)
}

// MoveUp swaps the entry at index with the one before it. It reports
// whether anything moved; the first entry and bad indexes stay put.
func (q *Queue) MoveUp(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index <= 0 || index >= len(q.paths) {
		return false
	}
	q.swap(index, index-1)
	return true
}

// MoveDown swaps the entry at index with the one after it.
func (q *Queue) MoveDown(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.paths)-1 {
		return false
	}
	q.swap(index, index+1)
	return true
}

func (q *Queue) swap(i, j int) {
	q.paths[i], q.paths[j] = q.paths[j], q.paths[i]
	q.keys[i], q.keys[j] = q.keys[j], q.keys[i]
}

func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paths = nil
	q.keys = nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.paths)
}

// Snapshot returns a copy of the queued paths in merge order. Later
// changes to the queue do not affect it.
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.paths)
}

// Check verifies that path names a readable presentation file and returns
// its absolute form.
func Check(path string) (string, error) {
	if !IsPresentation(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Base(path))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrUnreadable, abs)
	}
	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	_ = f.Close()
	return abs, nil
}

// IsPresentation reports whether path has a presentation extension.
func IsPresentation(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(Extensions, ext)
}

// Key returns the identity used for duplicate detection: the cleaned path
// in Unicode NFC, case-folded where the filesystem is case-insensitive.
func Key(path string) string {
	key := norm.NFC.String(filepath.Clean(path))
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		key = strings.ToLower(key)
	}
	return key
}
