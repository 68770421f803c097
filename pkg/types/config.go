// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// OCREngine identifies the OCR backend.
type OCREngine string

const (
	EngineTesseract OCREngine = "tesseract"
	EngineContainer OCREngine = "container"
	EngineFixture   OCREngine = "fixture"
)

// OCRConfig holds settings for the OCR capability.
type OCRConfig struct {
	// Engine selects the backend: tesseract, container, or fixture.
	Engine OCREngine `json:"engine" yaml:"engine"`

	// Languages are tesseract language codes (default "eng").
	Languages []string `json:"languages" yaml:"languages"`

	// Level is the fragment granularity: word, line, or block (default line).
	Level string `json:"level" yaml:"level"`

	// Image is the container image used by the container engine
	// (default "tesseract:latest").
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Timeout bounds a single recognition call (default 60s). Zero disables it.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// BatchConfig holds settings for the batch runner.
type BatchConfig struct {
	// Workers is the number of images processed concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// Extensions lists the image file extensions picked up from directories.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// RecordFixtures writes each image's fragments to a sidecar YAML file.
	RecordFixtures bool `json:"record_fixtures" yaml:"record_fixtures"`
}

// OutputFormat selects how records are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// StoreConfig holds settings for the SQLite record store.
type StoreConfig struct {
	// Enabled persists each batch run to the store.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DataDir is the directory holding ocr-actions.db.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	OCR    OCRConfig    `json:"ocr" yaml:"ocr"`
	Batch  BatchConfig  `json:"batch" yaml:"batch"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Format OutputFormat `json:"format" yaml:"format"`
}
