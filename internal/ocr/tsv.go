// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// Column layout of tesseract's TSV output:
// level page_num block_num par_num line_num word_num left top width height conf text
const (
	tsvColumns = 12
	tsvWord    = 5
)

type tsvKey struct {
	page, block, par, line, word int
}

type tsvGroup struct {
	words  []string
	region types.Region
	conf   float64
}

// ParseTSV converts tesseract TSV output into fragments at the given level.
// Word rows are grouped into lines or blocks in order of first appearance;
// words within a group are joined with single spaces. Confidence is the
// mean word confidence scaled to 0..1.
func ParseTSV(r io.Reader, level Level) ([]types.Fragment, error) {
	var (
		order  []tsvKey
		groups = make(map[tsvKey]*tsvGroup)
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		row := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 && strings.HasPrefix(row, "level") {
			continue
		}
		if row == "" {
			continue
		}
		cols := strings.SplitN(row, "\t", tsvColumns)
		if len(cols) < tsvColumns {
			// Structural rows for empty blocks carry no text column.
			continue
		}
		nums, err := atoiAll(cols[:10])
		if err != nil {
			return nil, fmt.Errorf("tsv line %d: %w", lineNo, err)
		}
		if nums[0] != tsvWord {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil {
			return nil, fmt.Errorf("tsv line %d: confidence %q: %w", lineNo, cols[10], err)
		}

		key := groupKey(level, nums)
		g, ok := groups[key]
		box := types.Region{X: nums[6], Y: nums[7], Width: nums[8], Height: nums[9]}
		if !ok {
			g = &tsvGroup{region: box}
			groups[key] = g
			order = append(order, key)
		} else {
			g.region = union(g.region, box)
		}
		g.words = append(g.words, text)
		g.conf += conf
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading tsv: %w", err)
	}

	frags := make([]types.Fragment, 0, len(order))
	for _, key := range order {
		g := groups[key]
		frags = append(frags, types.Fragment{
			Region:     g.region,
			Text:       strings.Join(g.words, " "),
			Confidence: g.conf / float64(len(g.words)) / 100,
		})
	}
	return frags, nil
}

func groupKey(level Level, nums []int) tsvKey {
	switch level {
	case LevelWord:
		return tsvKey{page: nums[1], block: nums[2], par: nums[3], line: nums[4], word: nums[5]}
	case LevelBlock:
		return tsvKey{page: nums[1], block: nums[2]}
	default:
		return tsvKey{page: nums[1], block: nums[2], par: nums[3], line: nums[4]}
	}
}

func atoiAll(cols []string) ([]int, error) {
	out := make([]int, len(cols))
	for i, c := range cols {
		n, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		out[i] = n
	}
	return out, nil
}

func union(a, b types.Region) types.Region {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1 := max(a.X+a.Width, b.X+b.Width)
	y1 := max(a.Y+a.Height, b.Y+b.Height)
	return types.Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
