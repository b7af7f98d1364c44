// Package ooxml handles the OPC plumbing shared by presentation parts:
// relationship files and target path resolution.
package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Namespaces and relationship types used by presentation documents.
const (
	NSRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NSDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSRelDoc         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	RelTypeImage      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeNotesSlide = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeSlide      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// Relationship maps a short id used inside a part to another part's path.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// IsImage reports whether the relationship points at a media image part.
func (r Relationship) IsImage() bool { return r.Type == RelTypeImage }

// IsNotesSlide reports whether the relationship points at a notes slide part.
func (r Relationship) IsNotesSlide() bool { return r.Type == RelTypeNotesSlide }

type relationshipsRoot struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// ParseRelationships decodes a .rels part. Ids are unique within one part's
// relationship set, so the result is keyed by id.
func ParseRelationships(data []byte) (map[string]Relationship, error) {
	var root relationshipsRoot
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	rels := make(map[string]Relationship, len(root.Relationships))
	for _, rel := range root.Relationships {
		rels[rel.ID] = rel
	}
	return rels, nil
}

// RelsPathFor returns the companion .rels path for a part, e.g.
// ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func RelsPathFor(partPath string) string {
	dir := path.Dir(partPath)
	base := path.Base(partPath)
	if dir == "." {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

// ResolveTarget resolves a relationship target against the referencing
// part's path. Targets are usually relative ("../media/image1.png"); a
// leading slash marks a package-absolute target.
func ResolveTarget(basePath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(basePath), target)
}
