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
	"errors"
	"fmt"
	"strings"
)

// MissingPartError is returned when an expected part is absent from the archive.
type MissingPartError struct {
	Part string
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("part %q not found in archive", e.Part)
}

// MalformedDocumentError is returned when a part cannot be parsed: unparseable
// XML, invalid structure, or group nesting past the recursion limit.
type MalformedDocumentError struct {
	Part        string
	SlideNumber int
	Reason      string
	Err         error
}

func (e *MalformedDocumentError) Error() string {
	parts := []string{"malformed document"}
	if e.SlideNumber > 0 {
		parts = append(parts, fmt.Sprintf("slide=%d", e.SlideNumber))
	}
	if e.Part != "" {
		parts = append(parts, fmt.Sprintf("part=%q", e.Part))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	msg := strings.Join(parts, " ")
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// ImageProcessingError is returned when an extracted image cannot be
// recompressed or saved.
type ImageProcessingError struct {
	Part string
	Err  error
}

func (e *ImageProcessingError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("image processing failed for %q: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("image processing failed: %v", e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// ConfigError is returned by NewParserConfig for invalid configurations.
// It is always surfaced before any parsing begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// IsMissingPart reports whether the error is a MissingPartError.
func IsMissingPart(err error) bool {
	var target *MissingPartError
	return errors.As(err, &target)
}

// IsMalformedDocument reports whether the error is a MalformedDocumentError.
func IsMalformedDocument(err error) bool {
	var target *MalformedDocumentError
	return errors.As(err, &target)
}

// IsImageProcessing reports whether the error is an ImageProcessingError.
func IsImageProcessing(err error) bool {
	var target *ImageProcessingError
	return errors.As(err, &target)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
