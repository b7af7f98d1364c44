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

import "testing"

func TestNewParserConfigDefaults(t *testing.T) {
	cfg, err := NewParserConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.ExtractImages {
		t.Error("ExtractImages should default to true")
	}
	if !cfg.CompressImages {
		t.Error("CompressImages should default to true")
	}
	if cfg.ImageQuality != 80 {
		t.Errorf("ImageQuality = %d, want 80", cfg.ImageQuality)
	}
	if cfg.ImageHandlingMode != ImageModeInMarkdown {
		t.Errorf("ImageHandlingMode = %v, want in-markdown", cfg.ImageHandlingMode)
	}
	if cfg.IncludeSlideComments {
		t.Error("IncludeSlideComments should default to false")
	}
}

func TestNewParserConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr bool
	}{
		{
			name: "valid custom",
			opts: []ConfigOption{
				WithImageQuality(50),
				WithImageHandlingMode(ImageModeManual),
				WithSlideComments(true),
			},
		},
		{
			name:    "quality below range",
			opts:    []ConfigOption{WithImageQuality(-1)},
			wantErr: true,
		},
		{
			name:    "quality above range",
			opts:    []ConfigOption{WithImageQuality(101)},
			wantErr: true,
		},
		{
			name:    "save without output path",
			opts:    []ConfigOption{WithImageHandlingMode(ImageModeSave)},
			wantErr: true,
		},
		{
			name: "save with output path",
			opts: []ConfigOption{
				WithImageHandlingMode(ImageModeSave),
				WithImageOutputPath("/tmp/images"),
			},
		},
		{
			name:    "unknown mode",
			opts:    []ConfigOption{WithImageHandlingMode(ImageHandlingMode(42))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParserConfig(tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsConfigError(err) {
					t.Errorf("expected ConfigError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestImageHandlingModeString(t *testing.T) {
	if got := ImageModeSave.String(); got != "save" {
		t.Errorf("String() = %q, want %q", got, "save")
	}
}
