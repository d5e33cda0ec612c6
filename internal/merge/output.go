package merge

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/slidemerge/internal/queue"
)

// DefaultExtension is appended to output names without a presentation
// extension.
const DefaultExtension = ".pptx"

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	multiSpace   = regexp.MustCompile(`\s+`)
	multiDot     = regexp.MustCompile(`\.{2,}`)
)

// SanitizeFilename makes name safe to use as a file name on common
// filesystems. Separators and reserved characters become spaces.
func SanitizeFilename(name string) string {
	// Control characters are dropped and the result normalised to NFC.
	clean := transform.Chain(runes.Remove(runes.In(unicode.Cc)), norm.NFC)
	if cleaned, _, err := transform.String(clean, name); err == nil {
		name = cleaned
	}
	name = illegalChars.ReplaceAllString(name, " ")
	name = multiDot.ReplaceAllString(name, ".")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}

// ResolveOutputPath turns a user supplied output name into an absolute
// path: the base name is sanitised, and DefaultExtension is appended when
// it has no presentation extension. The directory part is kept as given.
func ResolveOutputPath(name string) (string, error) {
	dir, base := filepath.Split(strings.TrimSpace(name))
	base = SanitizeFilename(base)
	if base == "" {
		return "", fmt.Errorf("%w: empty output file name", ErrValidation)
	}
	if !queue.IsPresentation(base) {
		base += DefaultExtension
	}
	abs, err := filepath.Abs(filepath.Join(dir, base))
	if err != nil {
		return "", fmt.Errorf("%w: resolve output: %v", ErrValidation, err)
	}
	return abs, nil
}
