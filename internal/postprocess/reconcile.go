package postprocess

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/kani-report/internal/cbmc"
)

// Descriptions Kani and CBMC use for checks that affect the whole run.
const (
	UnsupportedConstructDesc     = "is not currently supported by Kani"
	UnwindingAssertDesc          = "unwinding assertion loop"
	UnwindingAssertRecursionDesc = "recursion unwinding assertion"
	DefaultAssertionDesc         = "assertion"
)

// Advisory messages appended after the report.
const (
	UnsupportedConstructWarning = "** WARNING: A Rust construct that is not currently supported by Kani was found to be reachable. Check the results for more details."
	UnwindingInfo               = "[Kani] info: Verification output shows one or more unwinding failures."
	UnwindingTip                = "[Kani] tip: Consider increasing the unwinding value or disabling `--unwinding-assertions`."
)

// Flags summarise failures that make every successful result unreliable.
type Flags struct {
	HasReachableUnsupported bool
	HasFailedUnwinding      bool
	HasUnknownLocation      bool
}

// Policy controls the optional reconciliation rules.
type Policy struct {
	// UnwindingForcesUndetermined turns SUCCESS into UNDETERMINED when an unwinding assertion failed.
	UnwindingForcesUndetermined bool
}

// DefaultPolicy matches the behaviour of current Kani releases.
func DefaultPolicy() Policy {
	return Policy{UnwindingForcesUndetermined: true}
}

// Fundamental reports whether successes must be downgraded under the given policy.
func (f Flags) Fundamental(policy Policy) bool {
	return f.HasReachableUnsupported || f.HasUnknownLocation || (f.HasFailedUnwinding && policy.UnwindingForcesUndetermined)
}

// ComputeFlags scans the complete property list, before any filtering.
func ComputeFlags(props []cbmc.Property) Flags {
	var flags Flags
	for _, p := range props {
		if p.Status != cbmc.StatusFailure {
			continue
		}
		if strings.Contains(p.Description, UnsupportedConstructDesc) {
			flags.HasReachableUnsupported = true
		}
		if strings.Contains(p.Description, UnwindingAssertDesc) || strings.Contains(p.Description, UnwindingAssertRecursionDesc) {
			flags.HasFailedUnwinding = true
		}
		if isMissingDefinition(p) {
			flags.HasUnknownLocation = true
		}
	}
	return flags
}

func isMissingDefinition(p cbmc.Property) bool {
	return p.Description == DefaultAssertionDesc && p.SourceLocation.File == ""
}

// MarkMissingDefinitions rewrites the generic assertion raised for calls to
// functions without a body, so the report names the missing function.
func MarkMissingDefinitions(props []cbmc.Property) []cbmc.Property {
	out := cbmc.CloneProperties(props)
	for i := range out {
		fn := out[i].SourceLocation.Function
		if fn == "" || !isMissingDefinition(out[i]) {
			continue
		}
		out[i].Description = fmt.Sprintf("Function `%s` with missing definition is unreachable", fn)
	}
	return out
}

// Reconcile derives the final status of each property.
// When a fundamental failure was found every SUCCESS becomes UNDETERMINED.
// Otherwise a property whose reachability check succeeded becomes UNREACHABLE.
func Reconcile(props []cbmc.Property, flags Flags, policy Policy) ([]cbmc.Property, error) {
	out := cbmc.CloneProperties(props)
	fundamental := flags.Fundamental(policy)

	for i := range out {
		p := &out[i]
		switch {
		case fundamental:
			if p.Status == cbmc.StatusSuccess {
				p.Status = cbmc.StatusUndetermined
			}
		case p.Reach != nil && *p.Reach == cbmc.StatusSuccess:
			if p.Status != cbmc.StatusSuccess {
				return nil, &InvariantError{
					Reason:      fmt.Sprintf("expecting the unreachable property to have a status of %q, got %q", cbmc.StatusSuccess, p.Status),
					Description: p.Description,
				}
			}
			p.Status = cbmc.StatusUnreachable
		}
	}
	return out, nil
}

// Advisories returns the messages printed once after the report.
func Advisories(flags Flags) []string {
	var msgs []string
	if flags.HasReachableUnsupported {
		msgs = append(msgs, UnsupportedConstructWarning)
	}
	if flags.HasFailedUnwinding {
		msgs = append(msgs, UnwindingInfo, UnwindingTip)
	}
	return msgs
}
