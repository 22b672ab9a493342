package postprocess

import (
	"strings"

	"github.com/scan-io-git/kani-report/internal/cbmc"
)

// Property classes handled by the filters.
const (
	ClassSanityCheck       = "sanity_check"
	ClassPointerArithmetic = "pointer_arithmetic"
	ClassPointerPrimitives = "pointer_primitives"
)

// SplitReachabilityChecks partitions props into regular properties and the
// reachability checks whose description contains marker. Order is preserved in both.
func SplitReachabilityChecks(props []cbmc.Property, marker string) (kept, reach []cbmc.Property) {
	for _, p := range props {
		if strings.Contains(p.Description, marker) {
			reach = append(reach, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, reach
}

// DropSanityChecks removes compiler-generated sanity checks that passed.
func DropSanityChecks(props []cbmc.Property) []cbmc.Property {
	return filter(props, func(p cbmc.Property) bool {
		return !(p.ClassID() == ClassSanityCheck && p.Status == cbmc.StatusSuccess)
	})
}

// DropPointerChecks removes the unstable pointer arithmetic and pointer primitive checks.
func DropPointerChecks(props []cbmc.Property) []cbmc.Property {
	return filter(props, func(p cbmc.Property) bool {
		class := p.ClassID()
		return !strings.Contains(class, ClassPointerArithmetic) && !strings.Contains(class, ClassPointerPrimitives)
	})
}

func filter(props []cbmc.Property, keep func(cbmc.Property) bool) []cbmc.Property {
	out := make([]cbmc.Property, 0, len(props))
	for _, p := range props {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
