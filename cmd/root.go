package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/kani-report/cmd/render"
	"github.com/scan-io-git/kani-report/cmd/version"
	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/config"
	"github.com/scan-io-git/kani-report/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "kani-report [command]",
		SilenceUsage:          false,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "kani-report turns raw CBMC JSON output into a Kani verification report.",
		Long: `kani-report post-processes the JSON produced by CBMC for a Kani harness:
	it resolves reachability checks, reconciles statuses, rewrites descriptions
	and prints the verification report, optionally exporting SARIF.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.AddCommand(render.NewRenderCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return exitCode(rootCmd.Execute())
}

func exitCode(err error) int {
	if err == nil {
		return errors.ExitSuccess
	}

	var cmdErr *errors.CommandError
	if goerrors.As(err, &cmdErr) {
		if !alreadyReported(cmdErr.Err) && cmdErr.CommonError != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cmdErr.CommonError)
		}
		return cmdErr.ExitCode
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return errors.ExitFailure
}

// alreadyReported reports whether the output printed by the command already explains err.
func alreadyReported(err error) bool {
	var verificationErr *errors.VerificationFailedError
	var toolErr *cbmc.ToolError
	return goerrors.As(err, &verificationErr) || goerrors.As(err, &toolErr)
}

func initConfig() {
	var err error

	optional := cfgFile == ""
	if optional {
		cfgFile = config.DefaultConfigPath
	}
	AppConfig, err = config.LoadConfig(cfgFile, optional)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing config failed - %v\n", err)
		os.Exit(errors.ExitFailure)
	}
	config.ApplyEnvironment(AppConfig)
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitFailure)
	}

	render.Init(AppConfig)
	version.Init(AppConfig)
}
