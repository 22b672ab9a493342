package postprocess

import (
	"github.com/scan-io-git/kani-report/internal/cbmc"
	"github.com/scan-io-git/kani-report/internal/checkid"
)

// reachabilityLink pairs a reachability check with the property it guards.
type reachabilityLink struct {
	id     checkid.ID
	status cbmc.Status
	target int
}

// Annotate attaches the status of every reachability check to the property
// whose description embeds the same check identifier.
// The input slice is not modified.
func Annotate(kept, reach []cbmc.Property) ([]cbmc.Property, error) {
	out := cbmc.CloneProperties(kept)
	links, err := linkReachabilityChecks(out, reach)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		status := link.status
		out[link.target].Reach = &status
	}
	return out, nil
}

func linkReachabilityChecks(kept, reach []cbmc.Property) ([]reachabilityLink, error) {
	seen := make(map[checkid.ID]struct{}, len(reach))
	links := make([]reachabilityLink, 0, len(reach))

	for _, check := range reach {
		id, ok := checkid.Find(check.Description)
		if !ok {
			return nil, &InvariantError{Reason: "failed to extract check ID for reachability check", Description: check.Description}
		}
		if _, dup := seen[id]; dup {
			return nil, &InvariantError{Reason: "duplicate check ID " + id.String(), Description: check.Description}
		}
		seen[id] = struct{}{}

		target := -1
		for i := range kept {
			if checkid.Contains(kept[i].Description, id) {
				target = i
				break
			}
		}
		if target < 0 {
			return nil, &InvariantError{Reason: "failed to find matching property for reachability check", Description: check.Description}
		}

		links = append(links, reachabilityLink{id: id, status: check.Status, target: target})
	}
	return links, nil
}

// StripCheckIDs removes the embedded check identifiers from every description.
func StripCheckIDs(props []cbmc.Property) []cbmc.Property {
	out := cbmc.CloneProperties(props)
	for i := range out {
		out[i].Description = checkid.Strip(out[i].Description)
	}
	return out
}
