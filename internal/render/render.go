// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes extracted records in the CLI's output formats.
// Every format keeps image order, record order, and field order.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// ParseFormat validates s as an output format. The empty string selects text.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(s)); f {
	case "":
		return types.OutputText, nil
	case types.OutputText, types.OutputJSON, types.OutputYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q: want text, json, or yaml", s)
}

// Write renders results to w in the given format.
func Write(w io.Writer, format types.OutputFormat, results []types.ImageResult) error {
	switch format {
	case types.OutputText, "":
		return writeText(w, results)
	case types.OutputJSON:
		return writeJSON(w, results)
	case types.OutputYAML:
		return writeYAML(w, results)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeText prints one block per image: a heading line, then one numbered
// line per record with fields separated by " | ".
func writeText(w io.Writer, results []types.ImageResult) error {
	for _, r := range results {
		var b strings.Builder
		switch {
		case r.Err != nil:
			fmt.Fprintf(&b, "%s: failed (%v)\n", r.Path, r.Err)
		case r.Error != "":
			fmt.Fprintf(&b, "%s: failed (%s)\n", r.Path, r.Error)
		default:
			fmt.Fprintf(&b, "%s: %d record(s)", r.Path, len(r.Records))
			if r.Dropped > 0 {
				fmt.Fprintf(&b, ", %d dropped", r.Dropped)
			}
			b.WriteString("\n")
		}
		for i, rec := range r.Records {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(rec, " | "))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON emits JSON lines, one object per image.
func writeJSON(w io.Writer, results []types.ImageResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range results {
		if err := enc.Encode(normalize(r)); err != nil {
			return fmt.Errorf("encoding %s: %w", r.Path, err)
		}
	}
	return nil
}

// writeYAML emits a YAML document stream, one document per image.
func writeYAML(w io.Writer, results []types.ImageResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range results {
		if err := enc.Encode(normalize(r)); err != nil {
			return fmt.Errorf("encoding %s: %w", r.Path, err)
		}
	}
	return enc.Close()
}

// normalize fills the serialized error text and replaces nil records with
// an empty list so every format shows the field.
func normalize(r types.ImageResult) types.ImageResult {
	if r.Err != nil && r.Error == "" {
		r.Error = r.Err.Error()
	}
	if r.Records == nil {
		r.Records = []types.Record{}
	}
	return r
}
