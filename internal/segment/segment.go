// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment turns the raw text of an extraction window into structured
// action records. The text is split on the "If description" delimiter and
// the pieces are repaired by a fixed sequence of passes, each a pure
// function from groups of lines to groups of lines:
//
//	Split -> MergeIncompleteFirst -> ReattachSeams -> StripMarkers ->
//	RestoreDelimiter -> ReassembleRename -> ReassembleConditions
//
// No pass modifies its input.
package segment

import (
	"strings"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

// Segment runs the full pipeline over text and returns the structured
// records in source order. Groups too short to hold a record are skipped;
// each one is reported as a *MalformedRecordError in the returned error
// (joined with errors.Join), alongside the records that survived.
func Segment(text string) ([]types.Record, error) {
	groups := Split(text)
	if len(groups) == 0 {
		return nil, nil
	}

	groups = MergeIncompleteFirst(groups)
	groups = ReattachSeams(groups)
	groups = StripMarkers(groups)
	groups, err := RestoreDelimiter(groups)
	groups = ReassembleRename(groups)
	groups = ReassembleConditions(groups)

	if len(groups) == 0 {
		return nil, err
	}
	records := make([]types.Record, len(groups))
	for i, g := range groups {
		records[i] = types.Record(g)
	}
	return records, err
}

// Split cuts text on every delimiter phrase. Each piece is trimmed and broken
// into lines; pieces that are blank are dropped. Text without a delimiter
// yields a single group.
func Split(text string) [][]string {
	var groups [][]string
	for _, piece := range splitOnDelimiter(text) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		groups = append(groups, strings.Split(piece, "\n"))
	}
	return groups
}
