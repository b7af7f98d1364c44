// Copyright 2026 Nils Kruthoff
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nilskruthoff/pptx-parser/internal/ooxml"
)

// Fixture builders. Slide XML is assembled from fragments using the real
// presentationml/drawingml namespaces so the extractor sees what an actual
// pptx archive contains.

const xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

func slideXML(shapes ...string) string {
	return xmlProlog +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld></p:sld>`
}

func textShape(x, y int64, paragraphs ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="TextBox"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="914400" cy="914400"/></a:xfrm></p:spPr>`+
		`<p:txBody><a:bodyPr/>%s</p:txBody></p:sp>`, x, y, strings.Join(paragraphs, ""))
}

// plainShape has no xfrm of its own, so it inherits only group offsets.
func plainShape(paragraphs ...string) string {
	return `<p:sp><p:nvSpPr><p:cNvPr id="2" name="TextBox"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/>` + strings.Join(paragraphs, "") + `</p:txBody></p:sp>`
}

func para(runs ...string) string {
	return "<a:p>" + strings.Join(runs, "") + "</a:p>"
}

func listPara(bullet string, level int, runs ...string) string {
	lvl := ""
	if level > 0 {
		lvl = fmt.Sprintf(` lvl="%d"`, level)
	}
	return fmt.Sprintf(`<a:p><a:pPr%s>%s</a:pPr>%s</a:p>`, lvl, bullet, strings.Join(runs, ""))
}

const (
	bulletChar = `<a:buChar char="&#8226;"/>`
	bulletNum  = `<a:buAutoNum type="arabicPeriod"/>`
)

func run(text string) string {
	return `<a:r><a:t>` + text + `</a:t></a:r>`
}

func styledRun(text, attrs string) string {
	return fmt.Sprintf(`<a:r><a:rPr lang="en-US" %s/><a:t>%s</a:t></a:r>`, attrs, text)
}

func group(x, y int64, children ...string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="7" name="Group"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`+
		`<p:grpSpPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="914400" cy="914400"/>`+
		`<a:chOff x="0" y="0"/><a:chExt cx="914400" cy="914400"/></a:xfrm></p:grpSpPr>%s</p:grpSp>`,
		x, y, strings.Join(children, ""))
}

func tableFrame(x, y int64, rows ...string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="8" name="Table"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="914400" cy="914400"/></p:xfrm>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`+
		`<a:tbl>%s</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`, x, y, strings.Join(rows, ""))
}

func tableRow(cells ...string) string {
	var b strings.Builder
	b.WriteString(`<a:tr h="370840">`)
	for _, cell := range cells {
		b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>` + cell + `</a:t></a:r></a:p></a:txBody></a:tc>`)
	}
	b.WriteString(`</a:tr>`)
	return b.String()
}

func picShape(x, y int64, relID string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="9" name="Picture"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="914400" cy="914400"/></a:xfrm></p:spPr></p:pic>`, relID, x, y)
}

func relsXML(rels ...string) string {
	return xmlProlog +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(rels, "") +
		`</Relationships>`
}

func imageRel(id, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, id, target)
}

func notesRel(id, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="%s"/>`, id, target)
}

func notesXML(text string) string {
	return xmlProlog +
		`<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp>` +
		`</p:spTree></p:cSld></p:notes>`
}

// writePPTX assembles a pptx archive from part name to content and returns
// its path.
func writePPTX(t *testing.T, parts map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create part %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write part %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func openFixture(t *testing.T, cfg ParserConfig, parts map[string][]byte, opts ...ContainerOption) *Container {
	t.Helper()
	c, err := Open(writePPTX(t, parts), cfg, opts...)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func mustConfig(t *testing.T, opts ...ConfigOption) ParserConfig {
	t.Helper()
	cfg, err := NewParserConfig(opts...)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func mustParseRels(t *testing.T, data string) map[string]ooxml.Relationship {
	t.Helper()
	rels, err := ooxml.ParseRelationships([]byte(data))
	if err != nil {
		t.Fatalf("parse rels: %v", err)
	}
	return rels
}

// tinyPNG returns a valid 1x1 PNG.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func mustMD(t *testing.T, s *Slide) string {
	t.Helper()
	md, err := s.ConvertToMD()
	if err != nil {
		t.Fatalf("convert slide %d: %v", s.Number, err)
	}
	return md
}
