// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ocr-actions pipeline:
// OCR fragments, the extraction window, structured records, per-image
// results, and stage configuration.
package types

import "strings"

// Region is the bounding box of a recognized fragment in image pixels.
// The pipeline never interprets it; it is carried through for output.
type Region struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Fragment is one OCR recognition result.
type Fragment struct {
	// Region locates the fragment in the source image.
	Region Region `json:"region" yaml:"region"`

	// Text is the recognized text. It is the only field segmentation reads.
	Text string `json:"text" yaml:"text"`

	// Confidence is the engine's confidence in the range 0..1.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Window is the contiguous run of fragments between the "ACTION" header and
// the trailing "Select" button. Start is inclusive and End exclusive, both
// indexes into the full fragment sequence.
type Window struct {
	Start     int        `json:"start" yaml:"start"`
	End       int        `json:"end" yaml:"end"`
	Fragments []Fragment `json:"fragments" yaml:"fragments"`
}

// Len returns the number of fragments in the window.
func (w Window) Len() int {
	return len(w.Fragments)
}

// Text joins the fragment texts with newlines, preserving window order.
func (w Window) Text() string {
	texts := make([]string, len(w.Fragments))
	for i, f := range w.Fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, "\n")
}
