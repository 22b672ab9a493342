package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/config"
)

var plain = Options{}

func failingProperty() cbmc.Property {
	return cbmc.Property{
		Name:        "main.assertion.1",
		Description: "assertion failed: x > 0",
		Status:      cbmc.StatusFailure,
		SourceLocation: cbmc.SourceLocation{
			File: "main.rs", Function: "main", Line: "3", Column: "5",
		},
		Trace: []cbmc.TraceStep{
			{StepType: "function-call"},
			{StepType: "failure", SourceLocation: &cbmc.SourceLocation{File: "main.rs", Function: "main", Line: "3"}},
		},
	}
}

func TestDetailedSingleSuccess(t *testing.T) {
	props := []cbmc.Property{{Name: "main.assertion.1", Description: "assertion false", Status: cbmc.StatusSuccess}}

	out, failed := Detailed(props, plain)
	assert.Equal(t, 0, failed)
	expected := "RESULTS:\n" +
		"Check 1: main.assertion.1\n" +
		"\t - Status: SUCCESS\n" +
		"\t - Description: \"assertion false\"\n" +
		"\n" +
		"\nSUMMARY:\n" +
		" ** 0 of 1 failed\n" +
		"\nVERIFICATION:- SUCCESSFUL\n"
	assert.Equal(t, expected, out)
}

func TestDetailedWithLocationAndFailure(t *testing.T) {
	props := []cbmc.Property{
		failingProperty(),
		{Name: "main.assertion.2", Description: "ok", Status: cbmc.StatusUnreachable, SourceLocation: cbmc.SourceLocation{Function: "helper"}},
		{Name: "main.assertion.3", Description: "maybe", Status: cbmc.StatusUndetermined},
	}

	out, failed := Detailed(props, plain)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "\t - Location: main.rs:3:5 in function main\n")
	assert.Contains(t, out, "\t - Location: Unknown file in function helper\n")
	assert.Contains(t, out, "Check 3: main.assertion.3\n")
	assert.Contains(t, out, " ** 1 of 3 failed (1 undetermined,1 unreachable)\n")
	assert.Contains(t, out, "Failed Checks: assertion failed: x > 0\nFile: \"main.rs\", line 3, in main\n")
	assert.True(t, strings.HasSuffix(out, "VERIFICATION:- FAILED\n"))
}

func TestTerseFailure(t *testing.T) {
	out, failed := Terse([]cbmc.Property{failingProperty()}, plain)
	assert.Equal(t, 1, failed)
	expected := "VERIFICATION RESULT:\n" +
		" ** 1 of 1 failed\n" +
		"Failed Checks: assertion failed: x > 0\n" +
		"File: \"main.rs\", line 3, in main\n" +
		"\nVERIFICATION:- FAILED\n"
	assert.Equal(t, expected, out)
	assert.NotContains(t, out, "Check 1")
}

func TestFailureMessageFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		trace []cbmc.TraceStep
	}{
		{name: "no trace"},
		{name: "no location", trace: []cbmc.TraceStep{{StepType: "failure"}}},
		{name: "missing line", trace: []cbmc.TraceStep{{SourceLocation: &cbmc.SourceLocation{File: "a.rs", Function: "f"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := cbmc.Property{Description: "boom", Status: cbmc.StatusFailure, Trace: tt.trace}
			assert.Equal(t, "Failed Checks: boom\n", failureMessage(p, plain))
		})
	}
}

func TestFailureMessageUsesFunctionLocation(t *testing.T) {
	p := cbmc.Property{
		Description: "boom",
		Trace: []cbmc.TraceStep{{
			Function: &cbmc.TraceFunction{DisplayName: "f", SourceLocation: &cbmc.SourceLocation{File: "lib.rs", Function: "f", Line: "9"}},
		}},
	}
	assert.Equal(t, "Failed Checks: boom\nFile: \"lib.rs\", line 9, in f\n", failureMessage(p, plain))
}

func TestSummaryArithmetic(t *testing.T) {
	statuses := []cbmc.Status{
		cbmc.StatusFailure, cbmc.StatusSuccess, cbmc.StatusFailure,
		cbmc.StatusUnreachable, cbmc.StatusUndetermined, cbmc.StatusFailure,
	}
	var props []cbmc.Property
	for i, s := range statuses {
		props = append(props, cbmc.Property{Name: "p.assertion." + string(rune('a'+i)), Description: "d", Status: s})
		_, failed := Terse(props, plain)
		assert.Equal(t, cbmc.CountByStatus(props)[cbmc.StatusFailure], failed)
	}

	out, failed := Terse(props, plain)
	assert.Equal(t, 3, failed)
	assert.Contains(t, out, " ** 3 of 6 failed (1 undetermined,1 unreachable)")
}

func TestFormatLocationRelativePaths(t *testing.T) {
	opts := Options{WorkDir: "/work/project", HomeDir: "/home/dev"}

	assert.Equal(t, "src/lib.rs:10 in function f",
		FormatLocation(cbmc.SourceLocation{File: "/work/project/src/lib.rs", Line: "10", Function: "f"}, opts))
	assert.Equal(t, "~/.rustup/core.rs",
		FormatLocation(cbmc.SourceLocation{File: "/home/dev/.rustup/core.rs", Column: "4"}, opts))
}

func TestColorOutput(t *testing.T) {
	props := []cbmc.Property{failingProperty()}

	colored, _ := Detailed(props, Options{Color: true})
	assert.Contains(t, colored, "\x1b[31mFAILURE")
	assert.Contains(t, colored, "\x1b[31mFAILED")

	uncolored, _ := Detailed(props, Options{Color: false})
	assert.NotContains(t, uncolored, "\x1b[")
}

func TestSolverInfo(t *testing.T) {
	messages := []cbmc.Message{
		{Program: "CBMC 5.95.1 (cbmc-5.95.1)"},
		{MessageText: "Generating GOTO Program", MessageType: "STATUS-MESSAGE"},
		{MessageText: "VERIFICATION FAILED", MessageType: "STATUS-MESSAGE"},
		{MessageText: "Building error trace", MessageType: "STATUS-MESSAGE"},
		{MessageText: "not shown", MessageType: "STATUS-MESSAGE"},
	}
	assert.Equal(t, "CBMC 5.95.1 (cbmc-5.95.1)\nGenerating GOTO Program", SolverInfo(messages))
	assert.Empty(t, SolverInfo(nil))
}

func TestParseStyle(t *testing.T) {
	for name, expected := range map[string]Style{
		"regular": StyleRegular,
		"old":     StyleRegular,
		"default": StyleRegular,
		"terse":   StyleTerse,
	} {
		style, err := ParseStyle(name)
		require.NoError(t, err)
		assert.Equal(t, expected, style)
	}

	_, err := ParseStyle("fancy")
	assert.ErrorContains(t, err, `unknown output style "fancy"`)
}

func TestRenderDispatch(t *testing.T) {
	props := []cbmc.Property{failingProperty()}

	terse, _ := Render(StyleTerse, props, plain)
	assert.True(t, strings.HasPrefix(terse, "VERIFICATION RESULT:"))

	regular, _ := Render(StyleRegular, props, plain)
	assert.True(t, strings.HasPrefix(regular, "RESULTS:"))
}

func TestShouldColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ShouldColor(config.ColorAlways, &buf))
	assert.False(t, ShouldColor(config.ColorNever, &buf))
	assert.False(t, ShouldColor(config.ColorAuto, &buf))
}
