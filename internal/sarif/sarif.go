package sarif

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/files"
)

const (
	ToolName           = "Kani"
	ToolInformationURI = "https://github.com/model-checking/kani"
	RulePrefix         = "kani.cbmc."
)

// SARIF levels used for exported results.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelNote    = "note"
	LevelNone    = "none"
)

type Report struct {
	*sarif.Report
	logger hclog.Logger
}

// Metadata describes the verification run the properties come from.
type Metadata struct {
	Harness     string
	ToolVersion string
	WorkDir     string
	HomeDir     string
	// Levels restricts the exported results. Empty means error and warning.
	Levels []string
}

// levelForStatus maps a final status to a SARIF level. Passing, unreachable checks are not exported.
func levelForStatus(status cbmc.Status) (string, bool) {
	switch status {
	case cbmc.StatusFailure:
		return LevelError, true
	case cbmc.StatusUndetermined:
		return LevelWarning, true
	default:
		return "", false
	}
}

// NewReport builds a SARIF 2.1.0 report with one result per failed or undetermined property.
func NewReport(props []cbmc.Property, meta Metadata, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	levels, err := NormalizeAndValidateLevels(meta.Levels)
	if err != nil {
		return nil, err
	}

	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, ToolInformationURI)
	if meta.ToolVersion != "" {
		run.Tool.Driver.WithVersion(meta.ToolVersion)
	}
	runGUID := uuid.NewString()
	run.AutomationDetails = &sarif.RunAutomationDetails{GUID: &runGUID}

	skipped := 0
	for _, p := range props {
		level, ok := levelForStatus(p.Status)
		if !ok {
			continue
		}
		if !isLevelAllowed(level, levels) {
			skipped++
			continue
		}

		class := p.ClassID()
		ruleID := RulePrefix + class
		run.AddRule(ruleID).
			WithShortDescription(sarif.NewMultiformatMessageString(fmt.Sprintf("CBMC property `%s`", class)))

		result := run.CreateResultForRule(ruleID).
			WithGuid(uuid.NewString()).
			WithLevel(level).
			WithMessage(sarif.NewTextMessage(resultMessage(meta.Harness, p.Description)))

		if loc, ok := bestLocation(p, meta); ok {
			result.AddLocation(loc)
		} else {
			logger.Debug("no usable location for property", "property", p.Name)
		}

		result.Properties = sarif.Properties{
			"propertyName": p.Name,
			"status":       p.Status.String(),
			"Level":        level,
		}
		if meta.Harness != "" {
			result.Properties["harness"] = meta.Harness
		}
	}

	report.AddRun(run)
	logger.Debug("SARIF report built", "results", len(run.Results), "rules", len(run.Tool.Driver.Rules), "filtered", skipped)

	return &Report{Report: report, logger: logger}, nil
}

func resultMessage(harness, description string) string {
	if harness == "" {
		return description
	}
	return fmt.Sprintf("[%s] %s", harness, description)
}

// bestLocation prefers the property's own location and falls back to the
// deepest trace step that has a file and a numeric line.
func bestLocation(p cbmc.Property, meta Metadata) (*sarif.Location, bool) {
	if loc, ok := toLocation(&p.SourceLocation, meta); ok {
		return loc, true
	}
	for i := len(p.Trace) - 1; i >= 0; i-- {
		if loc, ok := toLocation(p.Trace[i].SourceLocation, meta); ok {
			return loc, true
		}
	}
	return nil, false
}

func toLocation(src *cbmc.SourceLocation, meta Metadata) (*sarif.Location, bool) {
	if src == nil || src.File == "" {
		return nil, false
	}
	line, err := strconv.Atoi(src.Line)
	if err != nil {
		return nil, false
	}

	region := sarif.NewRegion().WithStartLine(line)
	if column, err := strconv.Atoi(src.Column); err == nil {
		region.WithStartColumn(column)
	}

	uri := files.DisplayPath(src.File, meta.WorkDir, meta.HomeDir)
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewSimpleArtifactLocation(uri)).
		WithRegion(region)
	return sarif.NewLocationWithPhysicalLocation(physical), true
}

// CollectLevelInfo counts results per display severity, plus a total.
func (r Report) CollectLevelInfo() map[string]int {
	info := map[string]int{
		"high":   0,
		"medium": 0,
		"total":  0,
	}

	for _, run := range r.Runs {
		for _, result := range run.Results {
			level := ""
			if result.Level != nil {
				level = *result.Level
			}
			info[displaySeverityKey(level)]++
			info["total"]++
		}
	}
	return info
}

// SortResultsByLevel orders results error first, then warning, note and none.
// Results without a known level go last.
func (r Report) SortResultsByLevel() {
	rank := func(result *sarif.Result) int {
		if result.Level != nil {
			for i, s := range severityScale {
				if s.level == *result.Level {
					return i
				}
			}
		}
		return len(severityScale)
	}

	for _, run := range r.Runs {
		sort.SliceStable(run.Results, func(i, j int) bool {
			return rank(run.Results[i]) < rank(run.Results[j])
		})
	}
}

// WriteFile writes the indented report to path, creating missing parent directories.
func (r Report) WriteFile(path string) error {
	if err := files.EnsureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create SARIF output file %q: %w", path, err)
	}
	defer file.Close()

	if err := r.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to write SARIF output to %q: %w", path, err)
	}
	if _, err := file.WriteString("\n"); err != nil {
		return err
	}
	r.logger.Debug("SARIF report written", "path", path)
	return nil
}
