package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/kani-report/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Versions holds the build information injected through ldflags.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Current returns the build information of this binary.
func Current() Versions {
	return Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
	}
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		Short:                 "Print the version number of the application",
		Run: func(cmd *cobra.Command, args []string) {
			printVersionInfo(cmd.OutOrStdout(), Current())
		},
	}
}

func printVersionInfo(out io.Writer, versions Versions) {
	fmt.Fprintf(out, "Core Version: v%s\n", versions.Version)
	fmt.Fprintf(out, "Go Version: %s\n", versions.GolangVersion)
	fmt.Fprintf(out, "Build Time: %s\n", versions.BuildTime)
}
