package render

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/files"
)

// FormatLocation renders a source location as file:line:column in function fn.
func FormatLocation(loc cbmc.SourceLocation, opts Options) string {
	var sb strings.Builder
	if loc.File != "" {
		sb.WriteString(files.DisplayPath(loc.File, opts.WorkDir, opts.HomeDir))
		if loc.Line != "" {
			sb.WriteString(":" + loc.Line)
			if loc.Column != "" {
				sb.WriteString(":" + loc.Column)
			}
		}
	} else {
		sb.WriteString("Unknown file")
	}
	if loc.Function != "" {
		sb.WriteString(" in function " + loc.Function)
	}
	return sb.String()
}

// failureMessage describes a failed check, pointing at the last step of its
// trace when that step has a file, function and line.
func failureMessage(p cbmc.Property, opts Options) string {
	msg := fmt.Sprintf("Failed Checks: %s\n", p.Description)

	step := p.LastTraceStep()
	if step == nil {
		return msg
	}
	loc := step.Location()
	if loc == nil || loc.File == "" || loc.Function == "" || loc.Line == "" {
		return msg
	}
	file := files.DisplayPath(loc.File, opts.WorkDir, opts.HomeDir)
	return msg + fmt.Sprintf("File: \"%s\", line %s, in %s\n", file, loc.Line, loc.Function)
}
