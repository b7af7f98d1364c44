package ooxml

import "testing"

const relsWithImages = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image2.jpg"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide1.xml"/>
</Relationships>`

func TestParseRelationships(t *testing.T) {
	rels, err := ParseRelationships([]byte(relsWithImages))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rels) != 3 {
		t.Fatalf("got %d relationships, want 3", len(rels))
	}

	img, ok := rels["rId1"]
	if !ok {
		t.Fatal("rId1 missing")
	}
	if !img.IsImage() || img.Target != "../media/image1.png" {
		t.Errorf("rId1 = %+v", img)
	}

	notes := rels["rId3"]
	if !notes.IsNotesSlide() || notes.IsImage() {
		t.Errorf("rId3 = %+v", notes)
	}
}

func TestParseRelationshipsEmpty(t *testing.T) {
	data := `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`
	rels, err := ParseRelationships([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rels) != 0 {
		t.Errorf("got %d relationships, want 0", len(rels))
	}
}

func TestParseRelationshipsMalformed(t *testing.T) {
	if _, err := ParseRelationships([]byte("<Relationships><broken")); err == nil {
		t.Fatal("expected error for malformed XML")
	}
}

func TestRelsPathFor(t *testing.T) {
	tests := []struct {
		part string
		want string
	}{
		{"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
		{"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels"},
		{"content.xml", "_rels/content.xml.rels"},
	}
	for _, tt := range tests {
		if got := RelsPathFor(tt.part); got != tt.want {
			t.Errorf("RelsPathFor(%q) = %q, want %q", tt.part, got, tt.want)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		base   string
		target string
		want   string
	}{
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt/slides/slide1.xml", "../notesSlides/notesSlide1.xml", "ppt/notesSlides/notesSlide1.xml"},
		{"ppt/presentation.xml", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "/ppt/media/image1.png", "ppt/media/image1.png"},
	}
	for _, tt := range tests {
		if got := ResolveTarget(tt.base, tt.target); got != tt.want {
			t.Errorf("ResolveTarget(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
		}
	}
}
