package sarif

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// severity pairs a SARIF level with the name shown to users.
type severity struct {
	level   string
	display string
}

// severityScale is ordered from the most to the least severe.
var severityScale = []severity{
	{level: LevelError, display: "High"},
	{level: LevelWarning, display: "Medium"},
	{level: LevelNote, display: "Low"},
	{level: LevelNone, display: "Info"},
}

// defaultLevels are exported when no level filter is given: the levels FAILURE and UNDETERMINED map to.
var defaultLevels = []string{LevelError, LevelWarning}

type levelKind int

const (
	kindUnknown levelKind = iota
	kindSARIF
	kindDisplay
)

// lookupLevel resolves a normalized name to its SARIF level and tells which vocabulary it came from.
func lookupLevel(name string) (string, levelKind) {
	for _, s := range severityScale {
		switch name {
		case s.level:
			return s.level, kindSARIF
		case strings.ToLower(s.display):
			return s.level, kindDisplay
		}
	}
	return "", kindUnknown
}

func isLevelAllowed(level string, allowedLevels []string) bool {
	for _, allowed := range allowedLevels {
		if strings.EqualFold(level, allowed) {
			return true
		}
	}
	return false
}

// NormalizeAndValidateLevels turns a --sarif-levels value into SARIF levels.
// Names are either SARIF levels (error, warning, note, none) or display levels
// (high, medium, low, info), case-insensitive, and one list must not mix both.
// An empty list selects the levels of failed and undetermined checks.
func NormalizeAndValidateLevels(levels []string) ([]string, error) {
	if len(levels) == 0 {
		return append([]string(nil), defaultLevels...), nil
	}

	seen := map[levelKind]bool{}
	normalized := make([]string, 0, len(levels))
	for _, raw := range levels {
		level, kind := lookupLevel(strings.ToLower(strings.TrimSpace(raw)))
		if kind == kindUnknown {
			return nil, fmt.Errorf("invalid severity level '%s'. Valid SARIF levels: error, warning, note, none. Valid display levels: high, medium, low, info", raw)
		}
		seen[kind] = true
		normalized = append(normalized, level)
	}

	if seen[kindSARIF] && seen[kindDisplay] {
		return nil, fmt.Errorf("cannot mix SARIF levels (error, warning, note, none) with display levels (High, Medium, Low, Info)")
	}
	return normalized, nil
}

// DisplaySeverity returns the user-facing name of a SARIF level. Unknown levels are title-cased.
func DisplaySeverity(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		return ""
	}
	for _, s := range severityScale {
		if s.level == normalized {
			return s.display
		}
	}
	return cases.Title(language.Und).String(normalized)
}

func displaySeverityKey(level string) string {
	key := strings.ToLower(DisplaySeverity(level))
	if key == "" {
		return "unknown"
	}
	return key
}
