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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	pptx "github.com/nilskruthoff/pptx-parser"
)

var version = "dev"

func main() {
	var (
		output      string
		imageMode   string
		imageDir    string
		quality     int
		noImages    bool
		noCompress  bool
		comments    bool
		parallel    bool
		showVersion bool
	)

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&output, "output", "", "Output file (default: stdout)")
	flag.StringVar(&imageMode, "images", "inline", "Image handling: inline, manual or save")
	flag.StringVar(&imageDir, "image-dir", "", "Directory for saved images (required with -images=save)")
	flag.IntVar(&quality, "quality", 80, "Image recompression quality (0-100)")
	flag.BoolVar(&noImages, "no-images", false, "Skip image extraction entirely")
	flag.BoolVar(&noCompress, "no-compress", false, "Keep original image bytes")
	flag.BoolVar(&comments, "comments", false, "Include speaker notes as slide comments")
	flag.BoolVar(&parallel, "parallel", false, "Parse slides on a worker pool")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pptx2md [flags] <file.pptx>\n\n")
		fmt.Fprintf(os.Stderr, "Convert a PowerPoint presentation to Markdown.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("pptx2md %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	mode := pptx.ImageModeInMarkdown
	switch imageMode {
	case "inline":
	case "manual":
		mode = pptx.ImageModeManual
	case "save":
		mode = pptx.ImageModeSave
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown image mode %q\n", imageMode)
		os.Exit(2)
	}

	cfg, err := pptx.NewParserConfig(
		pptx.WithExtractImages(!noImages),
		pptx.WithCompressImages(!noCompress),
		pptx.WithImageQuality(quality),
		pptx.WithImageHandlingMode(mode),
		pptx.WithImageOutputPath(imageDir),
		pptx.WithSlideComments(comments),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	c, err := pptx.Open(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	var slides []*pptx.Slide
	if parallel {
		slides, err = c.ParseAllParallel()
	} else {
		slides, err = c.ParseAll()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	md, err := pptx.ConvertSlidesToMD(slides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if output != "" {
		if dir := filepath.Dir(output); dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		if err := os.WriteFile(output, []byte(md+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(md)
	}
}
