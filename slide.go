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
	"encoding/xml"
	"strings"
)

// Slide is one parsed slide: its 1-based number, its elements in visual
// reading order, and the optional speaker-notes comment. Elements are
// never reordered after assembly; rendering is a pure function of the
// slide and its configuration.
type Slide struct {
	Number   int
	Part     string
	Elements []SlideElement
	Comment  string

	cfg   ParserConfig
	saver ImageSaver
}

// buildSlide assembles a Slide from preloaded raw bytes. It is a pure
// function of (raw, cfg), which keeps sequential and parallel parsing
// observably identical.
func buildSlide(raw *rawSlide, cfg ParserConfig, codec ImageCodec, saver ImageSaver) (*Slide, error) {
	elements, err := extractElements(raw, cfg, codec)
	if err != nil {
		return nil, err
	}
	sortElements(elements)

	s := &Slide{
		Number:   raw.number,
		Part:     raw.part,
		Elements: elements,
		cfg:      cfg,
		saver:    saver,
	}

	if cfg.IncludeSlideComments && len(raw.notes) > 0 {
		comment, err := extractNotesText(raw)
		if err != nil {
			return nil, err
		}
		s.Comment = comment
	}
	return s, nil
}

// ConvertToMD renders the slide as Markdown under the slide's
// configuration. Under ImageModeSave the configured saver writes the image
// files as a side effect; every other part of rendering is pure.
func (s *Slide) ConvertToMD() (string, error) {
	return renderSlide(s)
}

// ManualImages returns the slide's extracted images for out-of-band
// handling. It yields values only under ImageModeManual with image
// extraction enabled; sequence indices are 1-based positions within the
// slide's sorted elements, so they are reproducible across sequential and
// parallel parsing.
func (s *Slide) ManualImages() []ManualImage {
	if s.cfg.ImageHandlingMode != ImageModeManual || !s.cfg.ExtractImages {
		return nil
	}
	var images []ManualImage
	seq := 0
	for _, el := range s.Elements {
		img, ok := el.(*ImageElement)
		if !ok || img.Data == nil {
			continue
		}
		seq++
		images = append(images, ManualImage{
			Data:          img.Data,
			Format:        img.Format,
			SourcePath:    img.Target,
			SlideNumber:   s.Number,
			SequenceIndex: seq,
		})
	}
	return images
}

// extractNotesText pulls the visible text out of a notes slide part,
// joining text bodies with newlines.
func extractNotesText(raw *rawSlide) (string, error) {
	var root xmlNode
	if err := xml.Unmarshal(raw.notes, &root); err != nil {
		return "", &MalformedDocumentError{
			Part:        raw.notesPart,
			SlideNumber: raw.number,
			Reason:      "unparseable notes XML",
			Err:         err,
		}
	}

	var parts []string
	collectNotesText(&root, &parts)
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func collectNotesText(node *xmlNode, parts *[]string) {
	if node.XMLName.Local == "txBody" {
		var lines []string
		for _, p := range node.childrenNamed("p") {
			var b strings.Builder
			for _, r := range parseRuns(p) {
				b.WriteString(r.Text)
			}
			if b.Len() > 0 {
				lines = append(lines, b.String())
			}
		}
		if text := strings.TrimSpace(strings.Join(lines, "\n")); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for i := range node.Children {
		collectNotesText(&node.Children[i], parts)
	}
}
