// Package postprocess turns the raw CBMC property list into the checks shown to the user.
package postprocess

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/pkg/shared/config"
)

// Options configures a Processor.
type Options struct {
	ReachabilityMarker string
	ExtraPointerChecks bool
	StrictDescriptions bool
	Policy             Policy
}

// OptionsFromConfig builds Options from the report section of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		ReachabilityMarker: config.DefaultReachabilityMarker,
		Policy:             DefaultPolicy(),
	}
	if cfg == nil {
		return opts
	}

	opts.ReachabilityMarker = config.SetThen(cfg.Report.ReachabilityMarker, config.DefaultReachabilityMarker)
	opts.ExtraPointerChecks = config.GetBoolValue(cfg, "Report.ExtraPointerChecks", false)
	opts.StrictDescriptions = config.GetBoolValue(cfg, "Report.StrictDescriptions", false)
	opts.Policy.UnwindingForcesUndetermined = config.GetBoolValue(cfg, "Report.UnwindingForcesUndetermined", true)
	return opts
}

// Outcome is the result of a pipeline run.
type Outcome struct {
	Properties []cbmc.Property
	Advisories []string
	Flags      Flags
}

// Processor runs the post-processing stages in order.
type Processor struct {
	opts     Options
	rewriter *Rewriter
	logger   hclog.Logger
}

// New creates a Processor.
func New(opts Options, logger hclog.Logger) *Processor {
	if opts.ReachabilityMarker == "" {
		opts.ReachabilityMarker = config.DefaultReachabilityMarker
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Processor{
		opts:     opts,
		rewriter: NewRewriter(opts.StrictDescriptions),
		logger:   logger,
	}
}

// Run post-processes props. The input is never modified.
// Flags are computed on the complete list so filtered checks still count.
func (p *Processor) Run(props []cbmc.Property) (*Outcome, error) {
	flags := ComputeFlags(props)
	p.logger.Debug("global flags computed",
		"unsupported", flags.HasReachableUnsupported,
		"unwinding", flags.HasFailedUnwinding,
		"unknown_location", flags.HasUnknownLocation,
	)

	marked := MarkMissingDefinitions(props)
	kept, reach := SplitReachabilityChecks(marked, p.opts.ReachabilityMarker)
	p.logger.Debug("reachability checks split", "kept", len(kept), "reachability", len(reach))

	annotated, err := Annotate(kept, reach)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate reachability results: %w", err)
	}

	filtered := DropSanityChecks(StripCheckIDs(annotated))
	if !p.opts.ExtraPointerChecks {
		before := len(filtered)
		filtered = DropPointerChecks(filtered)
		p.logger.Debug("extra pointer checks dropped", "count", before-len(filtered))
	}

	reconciled, err := Reconcile(filtered, flags, p.opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile statuses: %w", err)
	}

	rewritten, err := p.rewriter.RewriteAll(reconciled)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite descriptions: %w", err)
	}
	p.logger.Debug("post-processing finished", "properties", len(rewritten))

	return &Outcome{
		Properties: rewritten,
		Advisories: Advisories(flags),
		Flags:      flags,
	}, nil
}
