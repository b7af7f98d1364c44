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
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
)

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Container owns an opened presentation archive. It is the exclusive owner
// of the underlying byte store; keep it open for the lifetime of any
// SlideIterator obtained from it. Container methods are not safe for
// concurrent use; ParseAllParallel serializes its archive reads internally.
type Container struct {
	path       string
	zr         *zip.ReadCloser
	files      map[string]*zip.File
	slideParts []string
	cfg        ParserConfig
	codec      ImageCodec
	saver      ImageSaver
}

// ContainerOption overrides one of the Container's collaborators.
type ContainerOption func(*Container)

// WithImageCodec swaps the recompression codec used when
// ParserConfig.CompressImages is set.
func WithImageCodec(codec ImageCodec) ContainerOption {
	return func(c *Container) {
		c.codec = codec
	}
}

// WithImageSaver swaps the collaborator that writes images to disk under
// ImageModeSave.
func WithImageSaver(saver ImageSaver) ContainerOption {
	return func(c *Container) {
		c.saver = saver
	}
}

// Open opens a pptx archive and indexes its slide parts.
func Open(path string, cfg ParserConfig, opts ...ContainerOption) (*Container, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx %q: %w", path, err)
	}

	c := &Container{
		path:  path,
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
		cfg:   cfg,
		codec: jpegCodec{},
		saver: fileSaver{},
	}
	for _, f := range zr.File {
		c.files[f.Name] = f
		if slidePartRe.MatchString(f.Name) {
			c.slideParts = append(c.slideParts, f.Name)
		}
	}
	sort.Slice(c.slideParts, func(i, j int) bool {
		return slidePartNumber(c.slideParts[i]) < slidePartNumber(c.slideParts[j])
	})

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the archive.
func (c *Container) Close() error {
	return c.zr.Close()
}

// SlideParts returns the slide part names in ascending slide-number order.
func (c *Container) SlideParts() []string {
	parts := make([]string, len(c.slideParts))
	copy(parts, c.slideParts)
	return parts
}

// SlideCount returns the number of slide parts in the archive.
func (c *Container) SlideCount() int {
	return len(c.slideParts)
}

// ReadPart reads a named part's bytes from the archive.
func (c *Container) ReadPart(name string) ([]byte, error) {
	f, ok := c.files[name]
	if !ok {
		return nil, &MissingPartError{Part: name}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %q: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read part %q: %w", name, err)
	}
	return data, nil
}

// slidePartNumber extracts the numeric suffix from a slide part name.
// Returns 0 for names that do not match the slide part convention.
func slidePartNumber(name string) int {
	m := slidePartRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
