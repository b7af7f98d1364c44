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
	"encoding/base64"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// renderSlide converts an assembled slide to Markdown. The comment, when
// present, leads the output; elements follow in their sorted order.
func renderSlide(s *Slide) (string, error) {
	var b strings.Builder

	if s.Comment != "" {
		b.WriteString(renderComment(s.Comment))
		b.WriteString("\n\n")
	}

	imageSeq := 0
	for _, el := range s.Elements {
		switch e := el.(type) {
		case *TextElement:
			b.WriteString(renderRuns(e.Runs))
			b.WriteString("\n\n")
		case *ListElement:
			b.WriteString(renderList(e))
			b.WriteString("\n\n")
		case *TableElement:
			b.WriteString(renderTable(e))
			b.WriteString("\n\n")
		case *ImageElement:
			if e.Data != nil {
				imageSeq++
			}
			md, err := renderImage(s, e, imageSeq)
			if err != nil {
				return "", err
			}
			if md != "" {
				b.WriteString(md)
				b.WriteString("\n\n")
			}
		case *UnknownElement:
			// nothing to render
		}
	}

	return normalizeOutput(b.String()), nil
}

// renderComment emits the speaker notes as a single leading comment line.
func renderComment(comment string) string {
	comment = strings.Join(strings.Fields(comment), " ")
	return fmt.Sprintf("<!-- Notes: %s -->", comment)
}

// renderRuns renders text runs with their emphasis markers. Paragraph
// breaks ride on trailing newlines inside run text.
func renderRuns(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(renderRun(r))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRun(r Run) string {
	text := r.Text
	hadNewline := strings.HasSuffix(text, "\n")
	text = escapeMarkdown(strings.TrimRight(text, "\n"))

	switch {
	case r.Format.Bold && r.Format.Italic:
		text = "***" + text + "***"
	case r.Format.Bold:
		text = "**" + text + "**"
	case r.Format.Italic:
		text = "_" + text + "_"
	}
	if r.Format.Underline {
		text = "<u>" + text + "</u>"
	}

	if hadNewline {
		return text + "\n"
	}
	return text
}

// escapeMarkdown backslash-escapes characters that would otherwise change
// the Markdown structure.
func escapeMarkdown(s string) string {
	if !strings.ContainsAny(s, "\\`*_[]#|") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '#', '|':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// renderList emits dash markers for unordered lists and numeric markers
// restarting at 1 per list (and per indent level) for ordered ones.
func renderList(list *ListElement) string {
	var b strings.Builder
	counters := make(map[int]int)
	for i, item := range list.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", item.Level))
		if list.Ordered {
			counters[item.Level]++
			for lvl := range counters {
				if lvl > item.Level {
					delete(counters, lvl)
				}
			}
			fmt.Fprintf(&b, "%d. ", counters[item.Level])
		} else {
			b.WriteString("- ")
		}
		b.WriteString(inlineText(renderRuns(item.Runs)))
	}
	return b.String()
}

// renderTable emits a pipe table. The first row is the header; every row
// is padded to the table's column count with empty cells.
func renderTable(table *TableElement) string {
	var b strings.Builder

	writeRow := func(row TableRow) {
		b.WriteString("|")
		for i := 0; i < table.ColumnCount; i++ {
			cell := ""
			if i < len(row.Cells) {
				cell = inlineText(renderRuns(row.Cells[i].Runs))
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteByte('\n')
	}

	writeRow(table.Rows[0])
	b.WriteString("|")
	for i := 0; i < table.ColumnCount; i++ {
		b.WriteString(" --- |")
	}
	b.WriteByte('\n')
	for _, row := range table.Rows[1:] {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}

// inlineText flattens rendered text onto one line for list items and
// table cells.
func inlineText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// renderImage applies the configured image policy. Without extracted
// bytes the element renders as a plain reference to its media path; under
// ImageModeManual nothing is emitted (the caller gets the image through
// Slide.ManualImages instead).
func renderImage(s *Slide, img *ImageElement, seq int) (string, error) {
	if img.Data == nil {
		if s.cfg.ImageHandlingMode == ImageModeManual || img.Target == "" {
			return "", nil
		}
		return fmt.Sprintf("![%s](%s)", path.Base(img.Target), img.Target), nil
	}

	switch s.cfg.ImageHandlingMode {
	case ImageModeInMarkdown:
		mime := mimetype.Detect(img.Data).String()
		b64 := base64.StdEncoding.EncodeToString(img.Data)
		return fmt.Sprintf("![%s](data:%s;base64,%s)", path.Base(img.Target), mime, b64), nil
	case ImageModeManual:
		return "", nil
	case ImageModeSave:
		name := fmt.Sprintf("slide_%d_image_%d.%s", s.Number, seq, img.Format)
		dest := filepath.Join(s.cfg.ImageOutputPath, name)
		abs, err := filepath.Abs(dest)
		if err != nil {
			abs = dest
		}
		if err := s.saver.Save(abs, img.Data); err != nil {
			return "", &ImageProcessingError{Part: img.Target, Err: err}
		}
		return fmt.Sprintf("![%s](%s)", name, abs), nil
	}
	return "", nil
}
