package render

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/kani-report/cmd/version"
	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/internal/postprocess"
	"github.com/scan-io-git/kani-report/internal/render"
	"github.com/scan-io-git/kani-report/internal/sarif"
	"github.com/scan-io-git/kani-report/pkg/shared/config"
	"github.com/scan-io-git/kani-report/pkg/shared/errors"
	"github.com/scan-io-git/kani-report/pkg/shared/files"
	"github.com/scan-io-git/kani-report/pkg/shared/logger"
)

// RunOptions holds the arguments and flags of the render command.
type RunOptions struct {
	InputPath     string   `json:"input_path,omitempty"`
	Style         string   `json:"style,omitempty"`
	ExtraPtrCheck bool     `json:"extra_ptr_check,omitempty"`
	SarifPath     string   `json:"sarif_path,omitempty"`
	SarifLevels   []string `json:"sarif_levels,omitempty"`
	Harness       string   `json:"harness,omitempty"`
}

var (
	AppConfig *config.Config

	exampleRenderUsage = `  # Print the full report
  kani-report render cbmc-output.json regular

  # Print only the summary and the failed checks
  kani-report render cbmc-output.json terse

  # Keep the unstable pointer checks in the report
  kani-report render cbmc-output.json regular --extra-ptr-check

  # Also export failed and undetermined checks as SARIF
  kani-report render cbmc-output.json terse --sarif results/kani.sarif --harness check_add --sarif-levels error`
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	var opts RunOptions

	cmd := &cobra.Command{
		Use:                   "render PATH STYLE [--extra-ptr-check] [--sarif PATH] [--sarif-levels level[,level...]] [--harness NAME]",
		Short:                 "Render the CBMC JSON output of a harness as a verification report",
		Long:                  "Render reads the JSON array produced by CBMC, post-processes the properties and prints the report.\nSTYLE is one of: regular, terse, old, default.",
		Example:               exampleRenderUsage,
		SilenceUsage:          false,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]
			opts.Style = args[1]
			return runRender(cmd, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ExtraPtrCheck, "extra-ptr-check", false, "Keep the unstable pointer checks in the report")
	cmd.Flags().StringVar(&opts.SarifPath, "sarif", "", "Optional: write failed and undetermined checks to a SARIF file")
	// --sarif-levels supports multiple usages or comma-separated values
	cmd.Flags().StringSliceVar(&opts.SarifLevels, "sarif-levels", nil, "Optional: SARIF levels (error, warning, note, none) or display levels (high, medium, low, info) to export. Default: error,warning")
	cmd.Flags().StringVar(&opts.Harness, "harness", "", "Optional: harness name added to SARIF results")
	cmd.Flags().BoolP("help", "h", false, "Show help for render command.")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RunOptions) error {
	cfg := AppConfig
	if cfg == nil {
		cfg = config.Default()
	}
	lg := logger.NewLogger(cfg, "render")

	style, err := validate(opts)
	if err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandErrorf(errors.ExitFailure, "invalid arguments: %w", err)
	}
	// Arguments are valid, failures from here on are not usage errors.
	cmd.SilenceUsage = true
	logSetFlags(cmd, lg)

	return Run(cfg, opts, style, cmd.OutOrStdout(), cmd.ErrOrStderr(), lg)
}

// Run executes the whole pipeline for one CBMC output file and writes the report to stdout.
// It returns a CommandError carrying the exit code when the run is not successful.
func Run(cfg *config.Config, opts *RunOptions, style render.Style, stdout, stderr io.Writer, lg hclog.Logger) error {
	data, err := readInput(opts.InputPath)
	if err != nil {
		lg.Error("failed to read CBMC output", "path", opts.InputPath, "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	stream, err := decodeStream(data, stdout)
	if err != nil {
		lg.Error("failed to decode CBMC output", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	if msgs := cbmc.ExtractErrors(stream.Messages); len(msgs) > 0 {
		for _, msg := range msgs {
			fmt.Fprintln(stderr, msg)
		}
		lg.Debug("CBMC reported errors", "count", len(msgs))
		return errors.NewCommandError(&cbmc.ToolError{Messages: msgs}, errors.ExitFailure)
	}
	if !stream.HasResult {
		return errors.NewCommandError(cbmc.ErrNoResult, errors.ExitFailure)
	}

	pipelineOpts := postprocess.OptionsFromConfig(cfg)
	pipelineOpts.ExtraPointerChecks = pipelineOpts.ExtraPointerChecks || opts.ExtraPtrCheck
	outcome, err := postprocess.New(pipelineOpts, lg).Run(stream.Properties)
	if err != nil {
		lg.Error("post-processing failed", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	renderOpts := render.DetectOptions(cfg.Report.Color, stdout)
	if style == render.StyleRegular {
		if info := render.SolverInfo(stream.Messages); info != "" {
			fmt.Fprintln(stdout, info)
		}
	}
	text, failed := render.Render(style, outcome.Properties, renderOpts)
	fmt.Fprint(stdout, text)
	for _, advisory := range outcome.Advisories {
		fmt.Fprintln(stdout, advisory)
	}

	if opts.SarifPath != "" {
		if err := exportSarif(outcome.Properties, opts, renderOpts, lg); err != nil {
			lg.Error("failed to export SARIF report", "path", opts.SarifPath, "error", err)
			return errors.NewCommandErrorf(errors.ExitFailure, "failed to export SARIF report: %w", err)
		}
	}

	if failed > 0 {
		return errors.NewCommandError(&errors.VerificationFailedError{Failed: failed, Total: len(outcome.Properties)}, errors.ExitFailure)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read CBMC output from stdin: %w", err)
		}
		return data, nil
	}
	return files.ReadFile(path)
}

// decodeStream decodes and classifies the records. Malformed input is echoed to out as is.
func decodeStream(data []byte, out io.Writer) (*cbmc.Stream, error) {
	records, err := cbmc.DecodeRecords(data)
	if err != nil {
		var malformed *cbmc.MalformedInputError
		if goerrors.As(err, &malformed) {
			fmt.Fprintln(out, malformed.Raw)
		}
		return nil, err
	}
	return cbmc.Classify(records)
}

func exportSarif(props []cbmc.Property, opts *RunOptions, renderOpts render.Options, lg hclog.Logger) error {
	report, err := sarif.NewReport(props, sarif.Metadata{
		Harness:     opts.Harness,
		ToolVersion: version.CoreVersion,
		WorkDir:     renderOpts.WorkDir,
		HomeDir:     renderOpts.HomeDir,
		Levels:      opts.SarifLevels,
	}, lg)
	if err != nil {
		return err
	}

	report.SortResultsByLevel()
	if err := report.WriteFile(opts.SarifPath); err != nil {
		return err
	}

	info := report.CollectLevelInfo()
	lg.Info("SARIF report written", "path", opts.SarifPath, "total", info["total"], "high", info["high"], "medium", info["medium"])
	return nil
}
