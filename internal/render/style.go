// Package render formats post-processed CBMC results as text.
//
// Renderers are pure: everything that depends on the environment, such as
// whether colors are wanted or which directory paths are relative to, is passed
// in through Options.
package render

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/config"
)

// Options controls rendering.
type Options struct {
	Color   bool
	WorkDir string
	HomeDir string
}

// DetectOptions resolves the color mode against the output and reads the
// working and home directories used to shorten paths.
func DetectOptions(colorMode string, out io.Writer) Options {
	opts := Options{Color: ShouldColor(colorMode, out)}
	if wd, err := os.Getwd(); err == nil {
		opts.WorkDir = wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.HomeDir = home
	}
	return opts
}

// ShouldColor reports whether colors are used for the given mode and output.
// In auto mode colors are only used for interactive terminals.
func ShouldColor(colorMode string, out io.Writer) bool {
	switch colorMode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	success *color.Color
	failure *color.Color
	warning *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.success, p.failure, p.warning} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) status(s cbmc.Status) string {
	switch s {
	case cbmc.StatusSuccess:
		return p.success.Sprint(s.String())
	case cbmc.StatusFailure:
		return p.failure.Sprint(s.String())
	default:
		return p.warning.Sprint(s.String())
	}
}

func (p palette) verdict(failed bool) string {
	if failed {
		return p.failure.Sprint("FAILED")
	}
	return p.success.Sprint("SUCCESSFUL")
}
