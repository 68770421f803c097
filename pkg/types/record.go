// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one structured action record: its fields in on-screen order.
// Field 1 always carries the restored "If description" delimiter.
type Record []string

// ImageResult holds the outcome of processing one screenshot.
type ImageResult struct {
	// Path is the image file the records were extracted from.
	Path string `json:"path" yaml:"path"`

	// Records are the structured records in on-screen order. Empty when OCR
	// failed or nothing was found in the window.
	Records []Record `json:"records" yaml:"records"`

	// Dropped counts groups discarded as malformed during segmentation.
	Dropped int `json:"dropped,omitempty" yaml:"dropped,omitempty"`

	// Err is the OCR failure for this image, if any. It is reported in
	// Error for serialized output.
	Err error `json:"-" yaml:"-"`

	// Error is the text of Err.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether OCR failed for this image.
func (r ImageResult) Failed() bool {
	return r.Err != nil
}
