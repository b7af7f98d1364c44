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
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	// decoders for the formats slide media commonly ships in
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageCodec recompresses extracted image bytes. Implementations must be
// pure: same input and quality, same output.
type ImageCodec interface {
	Recompress(data []byte, quality int) ([]byte, error)
}

// jpegCodec is the default codec: decode whatever format the media part is
// in and re-encode as JPEG at the configured quality. Formats it cannot
// decode (vector media, emf) pass through untouched, as does any result
// that would be larger than the original.
type jpegCodec struct{}

func (jpegCodec) Recompress(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == image.ErrFormat {
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	if buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}

// ImageSaver writes extracted images to the filesystem under
// ImageModeSave.
type ImageSaver interface {
	Save(path string, data []byte) error
}

type fileSaver struct{}

func (fileSaver) Save(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
