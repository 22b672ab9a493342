package postprocess

import (
	"fmt"
	"strings"
)

// InvariantError signals CBMC output that is inconsistent with what Kani generates.
// It indicates a bug in the tool integration rather than a user error.
type InvariantError struct {
	Reason      string
	Description string
}

func (e *InvariantError) Error() string {
	if e.Description == "" {
		return "internal error: " + e.Reason
	}
	return fmt.Sprintf("internal error: %s: %q", e.Reason, e.Description)
}

// UnexpectedDescriptionError is returned in strict mode when a description
// matches none or several of the rewrite rules registered for its class.
type UnexpectedDescriptionError struct {
	ClassID     string
	Description string
	Matches     []string
}

func (e *UnexpectedDescriptionError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("unexpected description for class %q: %q matches no known description", e.ClassID, e.Description)
	}
	return fmt.Sprintf("unexpected description for class %q: %q matches several known descriptions (%s)",
		e.ClassID, e.Description, strings.Join(e.Matches, ", "))
}
