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
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/nilskruthoff/pptx-parser/internal/ooxml"
)

// rawSlide carries everything one slide's extraction needs, copied out of
// the archive up front: building a Slide from it is a pure function, so
// sequential and parallel parsing produce identical results.
type rawSlide struct {
	part      string
	number    int
	data      []byte
	rels      map[string]ooxml.Relationship
	media     map[string][]byte
	notes     []byte
	notesPart string
}

// loadRaw reads one slide part plus its companions (rels, referenced
// media, notes) from the archive. All container access funnels through
// here, single-goroutine at a time.
func (c *Container) loadRaw(part string) (*rawSlide, error) {
	raw := &rawSlide{
		part:   part,
		number: slidePartNumber(part),
	}

	data, err := c.ReadPart(part)
	if err != nil {
		return nil, err
	}
	raw.data = data

	relsPath := ooxml.RelsPathFor(part)
	relsData, err := c.ReadPart(relsPath)
	switch {
	case IsMissingPart(err):
		// many valid slides have no relationships
		raw.rels = map[string]ooxml.Relationship{}
	case err != nil:
		return nil, err
	default:
		rels, err := ooxml.ParseRelationships(relsData)
		if err != nil {
			return nil, &MalformedDocumentError{
				Part:        relsPath,
				SlideNumber: raw.number,
				Reason:      "unparseable relationships",
				Err:         err,
			}
		}
		raw.rels = rels
	}

	if c.cfg.ExtractImages {
		raw.media = make(map[string][]byte)
		for id, rel := range raw.rels {
			if !rel.IsImage() {
				continue
			}
			target := ooxml.ResolveTarget(part, rel.Target)
			data, err := c.ReadPart(target)
			if err != nil {
				return nil, err
			}
			raw.media[id] = data
		}
	}

	if c.cfg.IncludeSlideComments {
		for _, rel := range raw.rels {
			if !rel.IsNotesSlide() {
				continue
			}
			raw.notesPart = ooxml.ResolveTarget(part, rel.Target)
			notes, err := c.ReadPart(raw.notesPart)
			if err != nil {
				return nil, err
			}
			raw.notes = notes
			break
		}
	}

	return raw, nil
}

// ParseAll parses every slide sequentially, in slide-number order,
// aborting on the first failure.
func (c *Container) ParseAll() ([]*Slide, error) {
	slides := make([]*Slide, 0, len(c.slideParts))
	for _, part := range c.slideParts {
		raw, err := c.loadRaw(part)
		if err != nil {
			return nil, err
		}
		s, err := buildSlide(raw, c.cfg, c.codec, c.saver)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, nil
}

type slideJob struct {
	idx int
	raw *rawSlide
}

// ParseAllParallel parses slides on a bounded worker pool. Archive reads
// stay on the calling goroutine while workers run the CPU-bound
// extraction; results land in slide-number-indexed slots and are returned
// in order only once every part has completed. The first failure aborts
// the whole operation.
func (c *Container) ParseAllParallel() ([]*Slide, error) {
	parts := c.slideParts
	if len(parts) == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > len(parts) {
		workers = len(parts)
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	aborted := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	jobs := make(chan slideJob)
	slides := make([]*Slide, len(parts))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if aborted() {
					continue
				}
				s, err := buildSlide(job.raw, c.cfg, c.codec, c.saver)
				if err != nil {
					setErr(err)
					continue
				}
				slides[job.idx] = s
			}
		}()
	}

	for i, part := range parts {
		if aborted() {
			break
		}
		raw, err := c.loadRaw(part)
		if err != nil {
			setErr(err)
			break
		}
		jobs <- slideJob{idx: i, raw: raw}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return slides, nil
}

// SlideIterator yields one assembled Slide at a time, holding only the
// current slide in memory. It is single-threaded; the Container must stay
// open for the iterator's lifetime, and a fresh iterator (or a reopened
// container) is needed to restart.
//
//	it := c.IterSlides()
//	for it.Next() {
//		md, err := it.Slide().ConvertToMD()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
type SlideIterator struct {
	c     *Container
	parts []string
	idx   int
	cur   *Slide
	err   error
}

// IterSlides returns a lazy iterator over the container's slides.
func (c *Container) IterSlides() *SlideIterator {
	return &SlideIterator{c: c, parts: c.SlideParts()}
}

// Next advances to the next slide. It returns false at the end of the
// presentation or on the first error.
func (it *SlideIterator) Next() bool {
	if it.err != nil || it.idx >= len(it.parts) {
		it.cur = nil
		return false
	}
	part := it.parts[it.idx]
	it.idx++

	raw, err := it.c.loadRaw(part)
	if err != nil {
		it.err = err
		it.cur = nil
		return false
	}
	s, err := buildSlide(raw, it.c.cfg, it.c.codec, it.c.saver)
	if err != nil {
		it.err = err
		it.cur = nil
		return false
	}
	it.cur = s
	return true
}

// Slide returns the slide produced by the last successful Next.
func (it *SlideIterator) Slide() *Slide { return it.cur }

// Err returns the error that stopped iteration, if any.
func (it *SlideIterator) Err() error { return it.err }

// ConvertSlidesToMD renders a parsed slide sequence as one Markdown
// document with a comment marker separating the slides.
func ConvertSlidesToMD(slides []*Slide) (string, error) {
	var b strings.Builder
	for i, s := range slides {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "<!-- Slide number: %d -->\n\n", s.Number)
		md, err := s.ConvertToMD()
		if err != nil {
			return "", err
		}
		b.WriteString(md)
	}
	return strings.TrimSpace(b.String()), nil
}
