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

// Package pptx parses PowerPoint (pptx) presentations into a structured,
// visually ordered slide model and renders it as Markdown.
//
// Open a presentation with a validated configuration, then parse it
// sequentially, in parallel, or one slide at a time:
//
//	cfg, err := pptx.NewParserConfig()
//	if err != nil { ... }
//	c, err := pptx.Open("talk.pptx", cfg)
//	if err != nil { ... }
//	defer c.Close()
//
//	slides, err := c.ParseAll()
//	for _, s := range slides {
//		md, err := s.ConvertToMD()
//		...
//	}
//
// Sequential, parallel, and streaming parsing produce identical slides
// and identical Markdown for the same input and configuration.
package pptx
