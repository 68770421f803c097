// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inputs enumerates the screenshot files a batch run processes.
package inputs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the image types picked up from directories.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp"}

// Expand resolves args into image paths, in argument order. An argument
// may name a file, a directory (its images are listed non-recursively in
// lexical order), or a glob pattern. Files named explicitly are kept
// whatever their extension; directory and glob matches are filtered by
// exts. Duplicate paths are kept once, at their first position.
func Expand(args []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if hasMeta(arg) {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				if isImage(m, exts) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("image input %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if p := filepath.Join(arg, e.Name()); isImage(p, exts) {
				add(p)
			}
		}
	}
	return paths, nil
}

// Numbered returns n paths built from a printf format with one integer verb,
// e.g. "Pictures/%02d.png" for Pictures/00.png through Pictures/04.png.
func Numbered(format string, n int) ([]string, error) {
	if strings.Count(format, "%")-2*strings.Count(format, "%%") != 1 {
		return nil, fmt.Errorf("pattern %q must contain exactly one integer verb", format)
	}
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		paths[i] = fmt.Sprintf(format, i)
	}
	return paths, nil
}

func isImage(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
