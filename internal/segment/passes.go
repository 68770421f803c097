// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"errors"
	"slices"
	"strings"
)

const (
	// minLeadingLines is the shortest first group taken as a complete record.
	// Anything shorter is header residue that belongs with the next group.
	minLeadingLines = 3

	// minRecordFields is the shortest structured group that can carry the
	// restored delimiter in field 1.
	minRecordFields = 2

	// Marker is the UI button text stripped from every record.
	Marker = "Select"

	// bodyStart is the first field after the restored delimiter. The name
	// field before it and the delimiter field itself are never folded into
	// the fields that follow.
	bodyStart = 2

	renamePrefix    = "Rename"
	conditionPrefix = "If "
)

// MergeIncompleteFirst joins the first two groups when the first one has
// fewer than three lines. OCR then placed the delimiter inside what is really
// a single preamble plus first record.
func MergeIncompleteFirst(groups [][]string) [][]string {
	if len(groups) < 2 || len(groups[0]) >= minLeadingLines {
		return groups
	}
	merged := make([]string, 0, len(groups[0])+len(groups[1]))
	merged = append(merged, groups[0]...)
	merged = append(merged, groups[1]...)

	out := make([][]string, 0, len(groups)-1)
	out = append(out, merged)
	return append(out, groups[2:]...)
}

// ReattachSeams rebuilds records around the consumed delimiters. The line
// just before a delimiter ends up last in the preceding group, so each
// record after the first starts with the previous group's last line,
// followed by its own lines minus its last. The first record is its group
// minus the last line.
func ReattachSeams(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		body := dropLast(g)
		if i == 0 {
			out[i] = slices.Clone(body)
			continue
		}
		rec := make([]string, 0, len(body)+1)
		if prev := groups[i-1]; len(prev) > 0 {
			rec = append(rec, prev[len(prev)-1])
		}
		out[i] = append(rec, body...)
	}
	return out
}

// StripMarkers removes every line equal to Marker.
func StripMarkers(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		kept := make([]string, 0, len(g))
		for _, line := range g {
			if line != Marker {
				kept = append(kept, line)
			}
		}
		out[i] = kept
	}
	return out
}

// RestoreDelimiter prefixes field 1 of every group with Delimiter. Groups
// with fewer than two fields are left out of the result and reported as
// *MalformedRecordError values joined into the returned error.
func RestoreDelimiter(groups [][]string) ([][]string, error) {
	out := make([][]string, 0, len(groups))
	var errs []error
	for i, g := range groups {
		if len(g) < minRecordFields {
			errs = append(errs, &MalformedRecordError{Index: i, Fields: slices.Clone(g)})
			continue
		}
		rec := slices.Clone(g)
		rec[1] = Delimiter + rec[1]
		out = append(out, rec)
	}
	return out, errors.Join(errs...)
}

// ReassembleRename rejoins "Rename X to Y" instructions that OCR split over
// several lines. From the first body "Rename" line followed by at least two
// more lines, everything up to the group's final line is joined with spaces;
// the final line stays a separate field.
func ReassembleRename(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = reassembleRename(g)
	}
	return out
}

func reassembleRename(g []string) []string {
	for i := bodyStart; i < len(g); i++ {
		if !strings.HasPrefix(g[i], renamePrefix) || len(g)-i <= 2 {
			continue
		}
		rec := make([]string, 0, i+2)
		rec = append(rec, g[:i]...)
		rec = append(rec, strings.Join(g[i:len(g)-1], " "))
		return append(rec, g[len(g)-1])
	}
	return slices.Clone(g)
}

// ReassembleConditions rejoins conditions that OCR split over several lines.
// At the first "If " line preceded by another "If " line, the lines before
// that earlier one become one field and the lines from it up to the later
// one become a second field; the rest of the group is kept as is. The name
// field never starts a condition. Only one merge is applied per group, and
// positions where merging would change nothing are passed over.
func ReassembleConditions(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = reassembleConditions(g)
	}
	return out
}

func reassembleConditions(g []string) []string {
	for i := bodyStart; i < len(g); i++ {
		if !strings.HasPrefix(g[i], conditionPrefix) {
			continue
		}
		k := slices.IndexFunc(g[1:i], isCondition)
		if k < 0 {
			continue
		}
		k++
		if k == 1 && i-k == 1 {
			continue
		}
		rec := make([]string, 0, len(g)-i+2)
		rec = append(rec, strings.Join(g[:k], " "))
		rec = append(rec, strings.Join(g[k:i], " "))
		return append(rec, g[i:]...)
	}
	return slices.Clone(g)
}

func isCondition(line string) bool {
	return strings.HasPrefix(line, conditionPrefix)
}

func dropLast(g []string) []string {
	if len(g) == 0 {
		return nil
	}
	return g[:len(g)-1]
}
