package cbmc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResult is returned when the output contains no result batch.
var ErrNoResult = errors.New("no result object found in CBMC output")

// MalformedInputError is returned when the input is not the JSON array CBMC produces.
// Raw keeps the original text so it can be shown for debugging.
type MalformedInputError struct {
	Raw string
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("unable to parse CBMC output: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ToolError carries the ERROR messages emitted by CBMC.
type ToolError struct {
	Messages []string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("CBMC reported %d error(s): %s", len(e.Messages), strings.Join(e.Messages, "; "))
}
