package ooxml

import (
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Relationship type suffixes. Matching on the suffix covers both the
// transitional and strict namespaces.
const (
	relOfficeDocument = "officeDocument"
	relSlide          = "slide"
	relSlideMaster    = "slideMaster"
	relSlideLayout    = "slideLayout"
	relNotesSlide     = "notesSlide"
	relNotesMaster    = "notesMaster"
	relComments       = "comments"
	relModernComment  = "modernComment"
	relCommentAuthors = "commentAuthors"
)

const targetModeExternal = "External"

type relationships struct {
	XMLName xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Items   []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func parseRelationships(data []byte) (*relationships, error) {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("%w: relationships: %v", ErrCorruptPackage, err)
	}
	return &rels, nil
}

func (r *relationships) marshal() ([]byte, error) {
	out, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal relationships: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (r *relationships) byID(id string) *relationship {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return &r.Items[i]
		}
	}
	return nil
}

// nextID returns an unused relationship id of the form rIdN.
func (r *relationships) nextID() string {
	highest := 0
	for _, item := range r.Items {
		if n, err := strconv.Atoi(strings.TrimPrefix(item.ID, "rId")); err == nil && n > highest {
			highest = n
		}
	}
	return "rId" + strconv.Itoa(highest+1)
}

func (r *relationships) add(relType, target string) string {
	id := r.nextID()
	r.Items = append(r.Items, relationship{ID: id, Type: relType, Target: target})
	return id
}

func (r *relationships) removeID(id string) {
	kept := r.Items[:0]
	for _, item := range r.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	r.Items = kept
}

func (r *relationships) firstOfType(name string) *relationship {
	for i := range r.Items {
		if isRelType(r.Items[i].Type, name) {
			return &r.Items[i]
		}
	}
	return nil
}

func isRelType(relType, name string) bool {
	return strings.HasSuffix(relType, "/"+name)
}

// relsName returns the relationships part for part ("" is the package root).
func relsName(part string) string {
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

// resolveTarget turns a relationship target into a part name.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}

// relativeTarget returns the target string that points from source to part.
func relativeTarget(source, part string) string {
	from := splitDir(path.Dir(source))
	to := strings.Split(part, "/")

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	var b strings.Builder
	for range from[common:] {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(to[common:], "/"))
	return b.String()
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" || dir == "/" {
		return nil
	}
	return strings.Split(strings.Trim(dir, "/"), "/")
}
