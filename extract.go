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
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nilskruthoff/pptx-parser/internal/ooxml"
)

// maxGroupDepth bounds group-shape recursion. Documents nesting deeper than
// this are treated as malformed rather than recursed into unboundedly.
const maxGroupDepth = 64

// xmlNode is a generic XML tree node.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Content  string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *xmlNode) child(local string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

func (n *xmlNode) childrenNamed(local string) []*xmlNode {
	var result []*xmlNode
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			result = append(result, &n.Children[i])
		}
	}
	return result
}

// descendant finds the first descendant with the given local name.
func (n *xmlNode) descendant(local string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
		if found := n.Children[i].descendant(local); found != nil {
			return found
		}
	}
	return nil
}

// offset is an accumulated group translation in EMU.
type offset struct {
	x, y int64
}

// extractor walks one slide's shape tree and collects typed elements.
type extractor struct {
	raw      *rawSlide
	cfg      ParserConfig
	codec    ImageCodec
	order    int
	elements []SlideElement
}

// extractElements parses slide XML and returns its elements in document
// order, positions composed through all enclosing groups.
func extractElements(raw *rawSlide, cfg ParserConfig, codec ImageCodec) ([]SlideElement, error) {
	var root xmlNode
	if err := xml.Unmarshal(raw.data, &root); err != nil {
		return nil, &MalformedDocumentError{
			Part:        raw.part,
			SlideNumber: raw.number,
			Reason:      "unparseable slide XML",
			Err:         err,
		}
	}

	cSld := root.descendant("cSld")
	if cSld == nil {
		return nil, &MalformedDocumentError{
			Part:        raw.part,
			SlideNumber: raw.number,
			Reason:      "missing cSld element",
		}
	}
	spTree := cSld.child("spTree")
	if spTree == nil {
		return nil, &MalformedDocumentError{
			Part:        raw.part,
			SlideNumber: raw.number,
			Reason:      "missing spTree element",
		}
	}

	ex := &extractor{raw: raw, cfg: cfg, codec: codec}
	if err := ex.walkGroup(spTree, offset{}, 0); err != nil {
		return nil, err
	}
	return ex.elements, nil
}

// walkGroup visits the children of a group node (the spTree is itself one),
// pushing the accumulated translation down to every descendant. Nested
// groups recurse with the child group's transform composed on top.
func (ex *extractor) walkGroup(group *xmlNode, off offset, depth int) error {
	if depth > maxGroupDepth {
		return &MalformedDocumentError{
			Part:        ex.raw.part,
			SlideNumber: ex.raw.number,
			Reason:      "group nesting exceeds depth limit " + strconv.Itoa(maxGroupDepth),
		}
	}

	for i := range group.Children {
		node := &group.Children[i]
		switch node.XMLName.Local {
		case "sp":
			ex.addShape(node, off, depth)
		case "pic":
			if err := ex.addPicture(node, off, depth); err != nil {
				return err
			}
		case "graphicFrame":
			ex.addGraphicFrame(node, off, depth)
		case "grpSp":
			if err := ex.walkGroup(node, composeGroupOffset(node, off), depth+1); err != nil {
				return err
			}
		case "nvGrpSpPr", "grpSpPr":
			// group bookkeeping, not content
		default:
			ex.elements = append(ex.elements, &UnknownElement{Pos: ex.position(node, off, depth)})
		}
	}
	return nil
}

// composeGroupOffset folds a group's transform into the accumulated offset.
// Child coordinates inside a group are relative to chOff, so the effective
// translation is off - chOff.
func composeGroupOffset(group *xmlNode, off offset) offset {
	grpSpPr := group.child("grpSpPr")
	if grpSpPr == nil {
		return off
	}
	xfrm := grpSpPr.child("xfrm")
	if xfrm == nil {
		return off
	}
	if o := xfrm.child("off"); o != nil {
		off.x += parseEMU(o.attr("x"))
		off.y += parseEMU(o.attr("y"))
	}
	if ch := xfrm.child("chOff"); ch != nil {
		off.x -= parseEMU(ch.attr("x"))
		off.y -= parseEMU(ch.attr("y"))
	}
	return off
}

// position computes the absolute element position from the shape's own
// transform plus the accumulated group offset, and stamps the document
// order counter.
func (ex *extractor) position(node *xmlNode, off offset, depth int) ElementPosition {
	pos := ElementPosition{
		X:             off.x,
		Y:             off.y,
		Depth:         depth,
		DocumentOrder: ex.order,
	}
	ex.order++

	xfrm := ownTransform(node)
	if xfrm == nil {
		return pos
	}
	if o := xfrm.child("off"); o != nil {
		pos.X += parseEMU(o.attr("x"))
		pos.Y += parseEMU(o.attr("y"))
	}
	return pos
}

// ownTransform finds a shape's xfrm: under spPr for sp and pic, directly
// under the node for graphicFrame.
func ownTransform(node *xmlNode) *xmlNode {
	if spPr := node.child("spPr"); spPr != nil {
		if xfrm := spPr.child("xfrm"); xfrm != nil {
			return xfrm
		}
	}
	return node.child("xfrm")
}

func parseEMU(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// paragraph is an intermediate classification of one a:p node.
type paragraph struct {
	runs    []Run
	isList  bool
	ordered bool
	level   int
}

// addShape classifies an sp node. Its txBody paragraphs are partitioned
// into maximal runs of plain text and of list items sharing orderedness,
// each becoming one element at the shape's position.
func (ex *extractor) addShape(node *xmlNode, off offset, depth int) {
	txBody := node.child("txBody")
	if txBody == nil {
		ex.elements = append(ex.elements, &UnknownElement{Pos: ex.position(node, off, depth)})
		return
	}

	var paras []paragraph
	for _, p := range txBody.childrenNamed("p") {
		paras = append(paras, classifyParagraph(p))
	}

	pos := ex.position(node, off, depth)
	for i := 0; i < len(paras); {
		j := i + 1
		for j < len(paras) && paras[j].isList == paras[i].isList && paras[j].ordered == paras[i].ordered {
			j++
		}
		group := paras[i:j]
		if el := buildTextOrList(group, pos); el != nil {
			// elements split out of one shape keep the shape position but
			// their own document order
			if i > 0 {
				pos.DocumentOrder = ex.order
				ex.order++
				el = withPosition(el, pos)
			}
			ex.elements = append(ex.elements, el)
		}
		i = j
	}
}

// buildTextOrList turns a run of equally-classified paragraphs into one
// element, or nil when there is no visible text.
func buildTextOrList(paras []paragraph, pos ElementPosition) SlideElement {
	if len(paras) == 0 {
		return nil
	}
	if paras[0].isList {
		list := &ListElement{Ordered: paras[0].ordered, Pos: pos}
		for _, p := range paras {
			runs := mergeRuns(p.runs)
			if !runsHaveText(runs) {
				continue
			}
			list.Items = append(list.Items, ListItem{Runs: runs, Level: p.level})
		}
		if len(list.Items) == 0 {
			return nil
		}
		return list
	}

	text := &TextElement{Pos: pos}
	for _, p := range paras {
		runs := mergeRuns(p.runs)
		if len(runs) == 0 {
			continue
		}
		// keep the paragraph break on the last run of the paragraph
		runs[len(runs)-1].Text += "\n"
		text.Runs = append(text.Runs, runs...)
	}
	if !runsHaveText(text.Runs) {
		return nil
	}
	return text
}

func withPosition(el SlideElement, pos ElementPosition) SlideElement {
	switch e := el.(type) {
	case *TextElement:
		e.Pos = pos
	case *ListElement:
		e.Pos = pos
	}
	return el
}

// classifyParagraph reads one a:p node: its runs and, from pPr, whether it
// belongs to a list. A buAutoNum child marks a numbered list, a buChar
// child a bulleted one; a bare lvl attribute still counts as a bullet.
func classifyParagraph(p *xmlNode) paragraph {
	para := paragraph{runs: parseRuns(p)}

	pPr := p.child("pPr")
	if pPr == nil {
		return para
	}
	if lvl := pPr.attr("lvl"); lvl != "" {
		para.level, _ = strconv.Atoi(lvl)
		para.isList = true
	}
	if pPr.child("buAutoNum") != nil {
		para.isList = true
		para.ordered = true
	} else if pPr.child("buChar") != nil {
		para.isList = true
	}
	if pPr.child("buNone") != nil {
		para.isList = false
		para.ordered = false
	}
	return para
}

func parseRuns(p *xmlNode) []Run {
	var runs []Run
	for _, r := range p.childrenNamed("r") {
		run := Run{}
		if rPr := r.child("rPr"); rPr != nil {
			run.Format.Bold = boolAttr(rPr.attr("b"))
			run.Format.Italic = boolAttr(rPr.attr("i"))
			if u := rPr.attr("u"); u != "" && u != "none" {
				run.Format.Underline = true
			}
			run.Format.Lang = rPr.attr("lang")
		}
		if t := r.child("t"); t != nil {
			run.Text = t.Content
		}
		if run.Text == "" {
			continue
		}
		runs = append(runs, run)
	}
	return runs
}

func boolAttr(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// mergeRuns joins consecutive runs that share the same formatting,
// preserving style breaks.
func mergeRuns(runs []Run) []Run {
	if len(runs) < 2 {
		return runs
	}
	merged := runs[:1]
	for _, r := range runs[1:] {
		last := &merged[len(merged)-1]
		if r.Format == last.Format {
			last.Text += r.Text
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func runsHaveText(runs []Run) bool {
	for _, r := range runs {
		if strings.TrimSpace(r.Text) != "" {
			return true
		}
	}
	return false
}

// addGraphicFrame extracts a table from a graphicFrame node. Frames
// holding anything else (charts, diagrams) become Unknown.
func (ex *extractor) addGraphicFrame(node *xmlNode, off offset, depth int) {
	pos := ex.position(node, off, depth)

	tbl := node.descendant("tbl")
	if tbl == nil {
		ex.elements = append(ex.elements, &UnknownElement{Pos: pos})
		return
	}

	table := &TableElement{Pos: pos}
	for _, tr := range tbl.childrenNamed("tr") {
		row := TableRow{}
		for _, tc := range tr.childrenNamed("tc") {
			cell := TableCell{}
			if txBody := tc.child("txBody"); txBody != nil {
				for _, p := range txBody.childrenNamed("p") {
					cell.Runs = append(cell.Runs, mergeRuns(parseRuns(p))...)
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		if len(row.Cells) > table.ColumnCount {
			table.ColumnCount = len(row.Cells)
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 || table.ColumnCount == 0 {
		ex.elements = append(ex.elements, &UnknownElement{Pos: pos})
		return
	}
	ex.elements = append(ex.elements, table)
}

// addPicture extracts a pic node: the blip's relationship id, its resolved
// media target, and, when configured, the image bytes (optionally passed
// through the recompression codec).
func (ex *extractor) addPicture(node *xmlNode, off offset, depth int) error {
	pos := ex.position(node, off, depth)

	blip := node.descendant("blip")
	if blip == nil {
		ex.elements = append(ex.elements, &UnknownElement{Pos: pos})
		return nil
	}
	relID := blip.attr("embed")
	if relID == "" {
		ex.elements = append(ex.elements, &UnknownElement{Pos: pos})
		return nil
	}

	img := &ImageElement{RelID: relID, Pos: pos}
	if rel, ok := ex.raw.rels[relID]; ok {
		img.Target = ooxml.ResolveTarget(ex.raw.part, rel.Target)
	}

	if data, ok := ex.raw.media[relID]; ok && ex.cfg.ExtractImages {
		if ex.cfg.CompressImages {
			compressed, err := ex.codec.Recompress(data, ex.cfg.ImageQuality)
			if err != nil {
				return &ImageProcessingError{Part: img.Target, Err: err}
			}
			data = compressed
		}
		img.Data = data
		img.Format = strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	}

	ex.elements = append(ex.elements, img)
	return nil
}

// sortElements reorders elements into visual reading order: ascending y,
// then x, with document order as the final tie-break.
func sortElements(elements []SlideElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		a, b := elements[i].Position(), elements[j].Position()
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.DocumentOrder < b.DocumentOrder
	})
}
