package cbmc

import (
	"fmt"
	"strings"
)

// Status is the verification outcome of a single property.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusUndetermined
	StatusUnreachable
)

var statusNames = map[Status]string{
	StatusSuccess:      "SUCCESS",
	StatusFailure:      "FAILURE",
	StatusUndetermined: "UNDETERMINED",
	StatusUnreachable:  "UNREACHABLE",
}

// ParseStatus converts the status string emitted by CBMC.
// CBMC 6 reports UNKNOWN when another undefined-behaviour check failed, which is treated as UNDETERMINED.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESS":
		return StatusSuccess, nil
	case "FAILURE":
		return StatusFailure, nil
	case "UNDETERMINED", "UNKNOWN":
		return StatusUndetermined, nil
	case "UNREACHABLE":
		return StatusUnreachable, nil
	default:
		return 0, fmt.Errorf("unknown property status %q", s)
	}
}

// String returns the label used in reports.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}
