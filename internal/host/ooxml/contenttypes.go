package ooxml

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideshow    = "application/vnd.openxmlformats-officedocument.presentationml.slideshow.main+xml"
)

type contentTypes struct {
	XMLName   xml.Name     `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("%w: content types: %v", ErrCorruptPackage, err)
	}
	return &ct, nil
}

func (c *contentTypes) marshal() ([]byte, error) {
	out, err := xml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal content types: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (c *contentTypes) clone() *contentTypes {
	return &contentTypes{
		XMLName:   c.XMLName,
		Defaults:  append([]ctDefault(nil), c.Defaults...),
		Overrides: append([]ctOverride(nil), c.Overrides...),
	}
}

func (c *contentTypes) override(part string) (string, bool) {
	name := "/" + part
	for _, o := range c.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType, true
		}
	}
	return "", false
}

func (c *contentTypes) byExtension(part string) (string, bool) {
	ext := strings.TrimPrefix(path.Ext(part), ".")
	for _, d := range c.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType, true
		}
	}
	return "", false
}

// contentType returns the type of part, preferring an override.
func (c *contentTypes) contentType(part string) string {
	if ct, ok := c.override(part); ok {
		return ct
	}
	ct, _ := c.byExtension(part)
	return ct
}

func (c *contentTypes) setOverride(part, contentType string) {
	name := "/" + part
	for i := range c.Overrides {
		if strings.EqualFold(c.Overrides[i].PartName, name) {
			c.Overrides[i].ContentType = contentType
			return
		}
	}
	c.Overrides = append(c.Overrides, ctOverride{PartName: name, ContentType: contentType})
}

func (c *contentTypes) removeOverride(part string) {
	name := "/" + part
	kept := c.Overrides[:0]
	for _, o := range c.Overrides {
		if !strings.EqualFold(o.PartName, name) {
			kept = append(kept, o)
		}
	}
	c.Overrides = kept
}

// adopt registers dstPart in c with the content type srcPart has in src.
func (c *contentTypes) adopt(src *contentTypes, srcPart, dstPart string) {
	if ct, ok := src.override(srcPart); ok {
		c.setOverride(dstPart, ct)
		return
	}
	ct, ok := src.byExtension(srcPart)
	if !ok {
		return
	}
	if existing, ok := c.byExtension(dstPart); ok {
		if existing != ct {
			c.setOverride(dstPart, ct)
		}
		return
	}
	c.Defaults = append(c.Defaults, ctDefault{
		Extension:   strings.TrimPrefix(path.Ext(dstPart), "."),
		ContentType: ct,
	})
}
