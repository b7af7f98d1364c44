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

import "fmt"

// ImageHandlingMode controls what the renderer does with extracted images.
type ImageHandlingMode int

const (
	// ImageModeInMarkdown embeds image bytes as base64 data URIs in the output.
	ImageModeInMarkdown ImageHandlingMode = iota
	// ImageModeManual emits no image syntax; extracted images are exposed to
	// the caller through Slide.ManualImages.
	ImageModeManual
	// ImageModeSave writes images to ImageOutputPath and links the saved files.
	ImageModeSave
)

func (m ImageHandlingMode) String() string {
	switch m {
	case ImageModeInMarkdown:
		return "in-markdown"
	case ImageModeManual:
		return "manual"
	case ImageModeSave:
		return "save"
	default:
		return fmt.Sprintf("ImageHandlingMode(%d)", int(m))
	}
}

// ParserConfig holds the immutable parsing and rendering options.
// Build it with NewParserConfig; invalid combinations are rejected there,
// before any parsing starts.
type ParserConfig struct {
	ExtractImages        bool
	CompressImages       bool
	ImageQuality         int
	ImageHandlingMode    ImageHandlingMode
	ImageOutputPath      string
	IncludeSlideComments bool
}

// ConfigOption configures a ParserConfig under construction.
type ConfigOption func(*ParserConfig)

// WithExtractImages controls whether image bytes are read from the archive
// (default: true). When false, only image references are retained.
func WithExtractImages(extract bool) ConfigOption {
	return func(c *ParserConfig) {
		c.ExtractImages = extract
	}
}

// WithCompressImages controls whether extracted images are recompressed
// (default: true).
func WithCompressImages(compress bool) ConfigOption {
	return func(c *ParserConfig) {
		c.CompressImages = compress
	}
}

// WithImageQuality sets the recompression quality, 0-100 (default: 80).
func WithImageQuality(quality int) ConfigOption {
	return func(c *ParserConfig) {
		c.ImageQuality = quality
	}
}

// WithImageHandlingMode sets the image policy (default: ImageModeInMarkdown).
func WithImageHandlingMode(mode ImageHandlingMode) ConfigOption {
	return func(c *ParserConfig) {
		c.ImageHandlingMode = mode
	}
}

// WithImageOutputPath sets the directory saved images are written to.
// Required when the mode is ImageModeSave.
func WithImageOutputPath(dir string) ConfigOption {
	return func(c *ParserConfig) {
		c.ImageOutputPath = dir
	}
}

// WithSlideComments controls whether speaker notes are attached to slides as
// a leading comment (default: false).
func WithSlideComments(include bool) ConfigOption {
	return func(c *ParserConfig) {
		c.IncludeSlideComments = include
	}
}

// NewParserConfig builds a validated ParserConfig from the defaults and the
// given options. It returns a ConfigError for invalid combinations.
func NewParserConfig(opts ...ConfigOption) (ParserConfig, error) {
	cfg := ParserConfig{
		ExtractImages:     true,
		CompressImages:    true,
		ImageQuality:      80,
		ImageHandlingMode: ImageModeInMarkdown,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.ImageQuality < 0 || cfg.ImageQuality > 100 {
		return ParserConfig{}, &ConfigError{
			Field:  "ImageQuality",
			Reason: fmt.Sprintf("must be between 0 and 100, got %d", cfg.ImageQuality),
		}
	}
	switch cfg.ImageHandlingMode {
	case ImageModeInMarkdown, ImageModeManual, ImageModeSave:
	default:
		return ParserConfig{}, &ConfigError{
			Field:  "ImageHandlingMode",
			Reason: fmt.Sprintf("unknown mode %d", int(cfg.ImageHandlingMode)),
		}
	}
	if cfg.ImageHandlingMode == ImageModeSave && cfg.ImageOutputPath == "" {
		return ParserConfig{}, &ConfigError{
			Field:  "ImageOutputPath",
			Reason: "required when ImageHandlingMode is save",
		}
	}

	return cfg, nil
}

// DefaultParserConfig returns the default configuration.
func DefaultParserConfig() ParserConfig {
	cfg, _ := NewParserConfig()
	return cfg
}
