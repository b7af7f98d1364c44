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

// ElementPosition locates an element on its slide. X and Y are absolute
// slide-relative EMU coordinates after composing all enclosing group
// transforms. DocumentOrder is a per-slide counter used as the final sort
// tie-break; Depth is the group nesting depth the element was found at.
type ElementPosition struct {
	X             int64
	Y             int64
	Depth         int
	DocumentOrder int
}

// SlideElement is one typed piece of slide content: text, list, table,
// image, or an unrecognized shape.
type SlideElement interface {
	Position() ElementPosition
}

// Formatting holds the style flags of a text run.
type Formatting struct {
	Bold      bool
	Italic    bool
	Underline bool
	Lang      string
}

// Run is a span of text sharing one set of style flags.
type Run struct {
	Text   string
	Format Formatting
}

// TextElement is a block of text runs from one shape. Paragraph breaks are
// preserved as trailing newlines on the last run of each paragraph.
type TextElement struct {
	Runs []Run
	Pos  ElementPosition
}

func (e *TextElement) Position() ElementPosition { return e.Pos }

// ListItem is one bullet or numbered entry with its indent level.
type ListItem struct {
	Runs  []Run
	Level int
}

// ListElement is a run of consecutive list paragraphs from one shape.
type ListElement struct {
	Items   []ListItem
	Ordered bool
	Pos     ElementPosition
}

func (e *ListElement) Position() ElementPosition { return e.Pos }

// TableCell holds the runs of one table cell.
type TableCell struct {
	Runs []Run
}

// TableRow is one row of cells. Rows shorter than the table's ColumnCount
// are padded with empty cells at render time.
type TableRow struct {
	Cells []TableCell
}

// TableElement is a table from a graphicFrame. ColumnCount is the maximum
// row length across all rows.
type TableElement struct {
	Rows        []TableRow
	ColumnCount int
	Pos         ElementPosition
}

func (e *TableElement) Position() ElementPosition { return e.Pos }

// ImageElement references a picture on the slide. Target is the resolved
// archive path of the media part; Data is populated only when
// ParserConfig.ExtractImages is set. Format is the sniffed image format
// without a leading dot, e.g. "png".
type ImageElement struct {
	RelID  string
	Target string
	Data   []byte
	Format string
	Pos    ElementPosition
}

func (e *ImageElement) Position() ElementPosition { return e.Pos }

// UnknownElement stands in for shapes the extractor does not recognize.
// It renders as nothing and never fails a slide.
type UnknownElement struct {
	Pos ElementPosition
}

func (e *UnknownElement) Position() ElementPosition { return e.Pos }

// ManualImage is an extracted image surfaced to the caller under
// ImageModeManual. SequenceIndex is the 1-based index of the image within
// the slide's sorted elements, so it is stable across sequential and
// parallel parsing.
type ManualImage struct {
	Data          []byte
	Format        string
	SourcePath    string
	SlideNumber   int
	SequenceIndex int
}
