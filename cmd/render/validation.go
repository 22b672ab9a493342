package render

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/kani-report/internal/render"
	"github.com/scan-io-git/kani-report/internal/sarif"
)

// validate checks the render arguments before the input file is touched and returns the parsed style.
func validate(o *RunOptions) (render.Style, error) {
	if strings.TrimSpace(o.InputPath) == "" {
		return "", fmt.Errorf("input path is required")
	}

	style, err := render.ParseStyle(o.Style)
	if err != nil {
		return "", err
	}

	if o.SarifPath == "" {
		if len(o.SarifLevels) > 0 {
			return "", fmt.Errorf("--sarif-levels requires --sarif")
		}
		if o.Harness != "" {
			return "", fmt.Errorf("--harness requires --sarif")
		}
		return style, nil
	}

	if strings.TrimSpace(o.SarifPath) == "" {
		return "", fmt.Errorf("--sarif path must not be blank")
	}
	if _, err := sarif.NormalizeAndValidateLevels(o.SarifLevels); err != nil {
		return "", err
	}
	return style, nil
}

// HasFlags reports whether any flag was set explicitly on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	found := false
	flags.Visit(func(*pflag.Flag) {
		found = true
	})
	return found
}

func logSetFlags(cmd *cobra.Command, lg hclog.Logger) {
	if !HasFlags(cmd.Flags()) {
		return
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		lg.Debug("flag set", "name", f.Name, "value", f.Value.String())
	})
}
