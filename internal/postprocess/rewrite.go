package postprocess

import (
	"strings"

	"github.com/scan-io-git/kani-report/internal/cbmc"
)

// RewriteRule maps a description fragment to the text shown to the user.
// An empty Replace means the fragment itself is shown.
type RewriteRule struct {
	Match   string
	Replace string
}

// Text returns the replacement description.
func (r RewriteRule) Text() string {
	if r.Replace == "" {
		return r.Match
	}
	return r.Replace
}

// RewriteTable maps a property class to its rules.
// A class registered with no rules keeps its descriptions as they are.
type RewriteTable map[string][]RewriteRule

// DefaultRewriteTable holds the readable descriptions for CBMC checks.
// Most entries drop the temporary variable names CBMC puts into descriptions.
var DefaultRewriteTable = RewriteTable{
	"error_label":      {},
	"division-by-zero": {{Match: "division by zero"}},
	"enum-range-check": {{Match: "enum range check"}},
	"undefined-shift": {
		{Match: "shift distance is negative"},
		{Match: "shift distance too large"},
		{Match: "shift operand is negative"},
		{Match: "shift of non-integer type"},
	},
	"overflow": {
		{Match: "result of signed mod is not representable"},
		{Match: "arithmetic overflow on signed type conversion"},
		{Match: "arithmetic overflow on signed division"},
		{Match: "arithmetic overflow on signed unary minus"},
		{Match: "arithmetic overflow on signed shl"},
		{Match: "arithmetic overflow on unsigned unary minus"},
		{Match: "arithmetic overflow on signed +", Replace: "arithmetic overflow on signed addition"},
		{Match: "arithmetic overflow on signed -", Replace: "arithmetic overflow on signed subtraction"},
		{Match: "arithmetic overflow on signed *", Replace: "arithmetic overflow on signed multiplication"},
		{Match: "arithmetic overflow on unsigned +", Replace: "arithmetic overflow on unsigned addition"},
		{Match: "arithmetic overflow on unsigned -", Replace: "arithmetic overflow on unsigned subtraction"},
		{Match: "arithmetic overflow on unsigned *", Replace: "arithmetic overflow on unsigned multiplication"},
		{Match: "arithmetic overflow on floating-point typecast"},
		{Match: "arithmetic overflow on floating-point division"},
		{Match: "arithmetic overflow on floating-point addition"},
		{Match: "arithmetic overflow on floating-point subtraction"},
		{Match: "arithmetic overflow on floating-point multiplication"},
		{Match: "arithmetic overflow on unsigned to signed type conversion"},
		{Match: "arithmetic overflow on float to signed integer type conversion"},
		{Match: "arithmetic overflow on signed to unsigned type conversion"},
		{Match: "arithmetic overflow on unsigned to unsigned type conversion"},
		{Match: "arithmetic overflow on float to unsigned integer type conversion"},
	},
	"NaN": {
		{Match: "NaN on +", Replace: "NaN on addition"},
		{Match: "NaN on -", Replace: "NaN on subtraction"},
		{Match: "NaN on /", Replace: "NaN on division"},
		{Match: "NaN on *", Replace: "NaN on multiplication"},
	},
	"pointer": {{Match: "same object violation"}},
	"pointer_arithmetic": {
		{Match: "pointer relation: deallocated dynamic object"},
		{Match: "pointer relation: dead object"},
		{Match: "pointer relation: pointer NULL"},
		{Match: "pointer relation: pointer invalid"},
		{Match: "pointer relation: pointer outside dynamic object bounds"},
		{Match: "pointer relation: pointer outside object bounds"},
		{Match: "pointer relation: invalid integer address"},
		{Match: "pointer arithmetic: deallocated dynamic object"},
		{Match: "pointer arithmetic: dead object"},
		{Match: "pointer arithmetic: pointer NULL"},
		{Match: "pointer arithmetic: pointer invalid"},
		{Match: "pointer arithmetic: pointer outside dynamic object bounds"},
		{Match: "pointer arithmetic: pointer outside object bounds"},
		{Match: "pointer arithmetic: invalid integer address"},
	},
	"pointer_dereference": {
		{Match: "dereferenced function pointer must be", Replace: "dereference failure: invalid function pointer"},
		{Match: "dereference failure: pointer NULL"},
		{Match: "dereference failure: pointer invalid"},
		{Match: "dereference failure: deallocated dynamic object"},
		{Match: "dereference failure: dead object"},
		{Match: "dereference failure: pointer outside dynamic object bounds"},
		{Match: "dereference failure: pointer outside object bounds"},
		{Match: "dereference failure: invalid integer address"},
	},
	"pointer_primitives": {
		{Match: "pointer invalid"},
		{Match: "deallocated dynamic object", Replace: "pointer to deallocated dynamic object"},
		{Match: "dead object", Replace: "pointer to dead object"},
		{Match: "pointer outside dynamic object bounds"},
		{Match: "pointer outside object bounds"},
		{Match: "invalid integer address"},
	},
	"array_bounds": {
		{Match: "lower bound", Replace: "index out of bounds"},
		{Match: "upper bound", Replace: "index out of bounds: the length is less than or equal to the given index"},
	},
	"bit_count": {
		{Match: "count trailing zeros is undefined for value zero"},
		{Match: "count leading zeros is undefined for value zero"},
	},
	"memory-leak": {{Match: "dynamically allocated memory never freed"}},
}

// Rewriter replaces CBMC descriptions with readable ones.
// In strict mode a description that matches zero or several rules is an error.
type Rewriter struct {
	Table  RewriteTable
	Strict bool
}

// NewRewriter returns a Rewriter over DefaultRewriteTable.
func NewRewriter(strict bool) *Rewriter {
	return &Rewriter{Table: DefaultRewriteTable, Strict: strict}
}

// Rewrite returns the description to show for p.
func (r *Rewriter) Rewrite(p cbmc.Property) (string, error) {
	class := p.ClassID()
	rules, ok := r.Table[class]
	if !ok || len(rules) == 0 {
		return p.Description, nil
	}

	var matches []RewriteRule
	for _, rule := range rules {
		if strings.Contains(p.Description, rule.Match) {
			matches = append(matches, rule)
		}
	}
	if len(matches) == 1 {
		return matches[0].Text(), nil
	}

	if r.Strict {
		matched := make([]string, 0, len(matches))
		for _, m := range matches {
			matched = append(matched, m.Match)
		}
		return "", &UnexpectedDescriptionError{ClassID: class, Description: p.Description, Matches: matched}
	}
	return p.Description, nil
}

// RewriteAll applies Rewrite to every property.
func (r *Rewriter) RewriteAll(props []cbmc.Property) ([]cbmc.Property, error) {
	out := cbmc.CloneProperties(props)
	for i := range out {
		desc, err := r.Rewrite(out[i])
		if err != nil {
			return nil, err
		}
		out[i].Description = desc
	}
	return out, nil
}
