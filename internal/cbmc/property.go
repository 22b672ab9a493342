package cbmc

import (
	"strings"
)

// SourceLocation is a CBMC source location. Any field may be empty.
type SourceLocation struct {
	File     string `json:"file,omitempty" mapstructure:"file"`
	Function string `json:"function,omitempty" mapstructure:"function"`
	Line     string `json:"line,omitempty" mapstructure:"line"`
	Column   string `json:"column,omitempty" mapstructure:"column"`
}

// IsMissing reports whether both the file and the function are unknown.
func (l SourceLocation) IsMissing() bool {
	return l.File == "" && l.Function == ""
}

// HasAny reports whether at least one field is known.
func (l SourceLocation) HasAny() bool {
	return l.File != "" || l.Function != "" || l.Line != "" || l.Column != ""
}

// TraceFunction is the function a trace step belongs to.
type TraceFunction struct {
	DisplayName    string          `json:"displayName,omitempty" mapstructure:"displayName"`
	Identifier     string          `json:"identifier,omitempty" mapstructure:"identifier"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty" mapstructure:"sourceLocation"`
}

// TraceStep is one step of a counterexample trace. Only the location data is kept.
type TraceStep struct {
	StepType       string          `json:"stepType,omitempty" mapstructure:"stepType"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty" mapstructure:"sourceLocation"`
	Function       *TraceFunction  `json:"function,omitempty" mapstructure:"function"`
}

// Location returns the step's own source location, falling back to the location of its function.
func (s TraceStep) Location() *SourceLocation {
	if s.SourceLocation != nil {
		return s.SourceLocation
	}
	if s.Function != nil {
		return s.Function.SourceLocation
	}
	return nil
}

// Property is a single verification check reported by CBMC.
type Property struct {
	Name           string
	Description    string
	Status         Status
	SourceLocation SourceLocation
	Trace          []TraceStep

	// Reach is the status of the reachability check generated for this property, if any.
	Reach *Status
}

// ClassID returns the property class, i.e. the second-to-last component of
// a name of the form <scope>.<class-id>.<counter>.
func (p Property) ClassID() string {
	parts := strings.Split(p.Name, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// LastTraceStep returns the final step of the trace, or nil when there is no trace.
func (p Property) LastTraceStep() *TraceStep {
	if len(p.Trace) == 0 {
		return nil
	}
	return &p.Trace[len(p.Trace)-1]
}

// Clone returns a deep copy so pipeline stages never alias their input.
func (p Property) Clone() Property {
	c := p
	if p.Reach != nil {
		reach := *p.Reach
		c.Reach = &reach
	}
	if p.Trace != nil {
		c.Trace = make([]TraceStep, len(p.Trace))
		copy(c.Trace, p.Trace)
	}
	return c
}

// CloneProperties deep-copies a property list.
func CloneProperties(props []Property) []Property {
	if props == nil {
		return nil
	}
	out := make([]Property, len(props))
	for i, p := range props {
		out[i] = p.Clone()
	}
	return out
}

// CountByStatus tallies the properties per status.
func CountByStatus(props []Property) map[Status]int {
	counts := make(map[Status]int, len(statusNames))
	for _, p := range props {
		counts[p.Status]++
	}
	return counts
}
