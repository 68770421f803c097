// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"errors"
	"fmt"
)

// MalformedRecordError reports a structured group that is too short to carry
// the restored delimiter. The group is dropped from the output.
type MalformedRecordError struct {
	// Index is the group's position among the structured groups.
	Index int
	// Fields are the group's lines after marker stripping.
	Fields []string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %d: need at least %d fields, have %d %q",
		e.Index, minRecordFields, len(e.Fields), e.Fields)
}

// Malformed returns every *MalformedRecordError contained in err, which may
// be a single error or one built with errors.Join.
func Malformed(err error) []*MalformedRecordError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*MalformedRecordError
		for _, e := range joined.Unwrap() {
			out = append(out, Malformed(e)...)
		}
		return out
	}
	var m *MalformedRecordError
	if errors.As(err, &m) {
		return []*MalformedRecordError{m}
	}
	return nil
}
