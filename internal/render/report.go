package render

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/kani-report/internal/cbmc"
)

// Style selects the output format.
type Style string

const (
	StyleRegular Style = "regular"
	StyleTerse   Style = "terse"
	StyleOld     Style = "old"
	StyleDefault Style = "default"
)

// ParseStyle validates a style name. old and default are aliases of regular.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case StyleRegular, StyleOld, StyleDefault:
		return StyleRegular, nil
	case StyleTerse:
		return StyleTerse, nil
	default:
		return "", fmt.Errorf("unknown output style %q, expected one of: regular, terse, old, default", name)
	}
}

const verdictPrefix = "VERIFICATION"

// Render dispatches to the renderer of the given style.
func Render(style Style, props []cbmc.Property, opts Options) (string, int) {
	if style == StyleTerse {
		return Terse(props, opts)
	}
	return Detailed(props, opts)
}

// SolverInfo joins the program banner and status messages printed by CBMC,
// stopping at the message that announces the error traces. CBMC's own
// VERIFICATION verdicts are skipped since the report prints its own.
func SolverInfo(messages []cbmc.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.MessageText == cbmc.BuildingTraceMessage {
			break
		}
		if strings.HasPrefix(m.MessageText, verdictPrefix) {
			continue
		}
		if m.Program != "" {
			lines = append(lines, m.Program)
			continue
		}
		lines = append(lines, m.MessageText)
	}
	return strings.Join(lines, "\n")
}

// Detailed renders every check followed by the summary. It returns the text and the number of failed checks.
func Detailed(props []cbmc.Property, opts Options) (string, int) {
	pal := newPalette(opts.Color)
	var sb strings.Builder

	sb.WriteString("RESULTS:\n")
	for i, p := range props {
		fmt.Fprintf(&sb, "Check %d: %s\n", i+1, p.Name)
		fmt.Fprintf(&sb, "\t - Status: %s\n", pal.status(p.Status))
		fmt.Fprintf(&sb, "\t - Description: \"%s\"\n", p.Description)
		if p.SourceLocation.HasAny() {
			fmt.Fprintf(&sb, "\t - Location: %s\n", FormatLocation(p.SourceLocation, opts))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nSUMMARY:\n")
	failed := writeSummary(&sb, props, opts, pal)
	return sb.String(), failed
}

// Terse renders only the summary and the failed checks.
func Terse(props []cbmc.Property, opts Options) (string, int) {
	pal := newPalette(opts.Color)
	var sb strings.Builder

	sb.WriteString("VERIFICATION RESULT:\n")
	failed := writeSummary(&sb, props, opts, pal)
	return sb.String(), failed
}

func writeSummary(sb *strings.Builder, props []cbmc.Property, opts Options, pal palette) int {
	counts := cbmc.CountByStatus(props)
	failed := counts[cbmc.StatusFailure]

	fmt.Fprintf(sb, " ** %d of %d failed", failed, len(props))
	var other []string
	if n := counts[cbmc.StatusUndetermined]; n > 0 {
		other = append(other, fmt.Sprintf("%d undetermined", n))
	}
	if n := counts[cbmc.StatusUnreachable]; n > 0 {
		other = append(other, fmt.Sprintf("%d unreachable", n))
	}
	if len(other) > 0 {
		fmt.Fprintf(sb, " (%s)", strings.Join(other, ","))
	}
	sb.WriteString("\n")

	for _, p := range props {
		if p.Status == cbmc.StatusFailure {
			sb.WriteString(failureMessage(p, opts))
		}
	}

	fmt.Fprintf(sb, "\nVERIFICATION:- %s\n", pal.verdict(failed > 0))
	return failed
}
