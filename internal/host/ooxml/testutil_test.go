package ooxml

import (
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/slidemerge/internal/host/ooxml/ooxmltest"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const relBase = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`

type deck = ooxmltest.Deck

func writeDeck(t *testing.T, dir, name string, d deck) string {
	t.Helper()
	return ooxmltest.WriteDeck(t, dir, name, d)
}

var labelPattern = regexp.MustCompile(`<a:t>([^<]*)</a:t>`)

// slideLabels returns the label of every slide of the package at path, in order.
func slideLabels(t *testing.T, path string) []string {
	t.Helper()
	pk, err := readPackage(path)
	require.NoError(t, err, "read package")
	return packageLabels(t, pk)
}

func packageLabels(t *testing.T, pk *pkg) []string {
	t.Helper()
	slides, err := pk.slideParts()
	require.NoError(t, err, "slide parts")
	labels := make([]string, 0, len(slides))
	for _, s := range slides {
		m := labelPattern.FindSubmatch(pk.parts[s])
		require.NotNil(t, m, "slide %s has no label", s)
		labels = append(labels, string(m[1]))
	}
	return labels
}

// requireConsistent checks that every internal relationship resolves to a
// part and every part has a content type.
func requireConsistent(t *testing.T, pk *pkg) {
	t.Helper()
	for name, data := range pk.parts {
		if strings.Contains(name, "_rels/") {
			owner := ownerOf(name)
			rs, err := parseRelationships(data)
			require.NoError(t, err, "parse %s", name)
			for _, r := range rs.Items {
				if r.TargetMode == targetModeExternal {
					continue
				}
				target := resolveTarget(owner, r.Target)
				_, ok := pk.parts[target]
				require.True(t, ok, "%s: %s -> %s missing", name, r.ID, target)
			}
			continue
		}
		_, byOverride := pk.types.override(name)
		_, byExt := pk.types.byExtension(name)
		require.True(t, byOverride || byExt, "no content type for %s", name)
	}
}

// ownerOf maps a rels part name back to the part it describes.
func ownerOf(relsPart string) string {
	dir, base := filepath.Split(relsPart)
	dir = strings.TrimSuffix(strings.TrimSuffix(dir, "/"), "_rels")
	return strings.TrimPrefix(dir+strings.TrimSuffix(base, ".rels"), "/")
}
