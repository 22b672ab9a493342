// Package checkid implements the identifier Kani embeds into property descriptions
// to link a reachability check with the property it guards.
//
// An identifier has the form KANI_CHECK_ID_<scope>_<counter>, where scope is an
// opaque token without whitespace or square brackets and counter is a decimal number.
// Inside a description it appears wrapped in square brackets.
package checkid

import (
	"regexp"
	"strconv"
	"strings"
)

// Prefix starts every check identifier.
const Prefix = "KANI_CHECK_ID_"

var (
	findRe  = regexp.MustCompile(Prefix + `([^\[\]\s]+)_([0-9]+)`)
	stripRe = regexp.MustCompile(`\[` + Prefix + `[^\]]*\] ?`)
)

// ID is a decoded check identifier. Counter keeps the digits exactly as they
// appear in the text, so leading zeros and values beyond uint64 survive a round trip.
type ID struct {
	Scope   string
	Counter string
}

// Encode builds an identifier from its parts.
func Encode(scope string, counter uint64) ID {
	return ID{Scope: scope, Counter: strconv.FormatUint(counter, 10)}
}

func (id ID) String() string {
	return Prefix + id.Scope + "_" + id.Counter
}

// Bracketed returns the identifier as it is embedded in descriptions.
func (id ID) Bracketed() string {
	return "[" + id.String() + "]"
}

// Find returns the first identifier in text.
func Find(text string) (ID, bool) {
	m := findRe.FindStringSubmatch(text)
	if m == nil {
		return ID{}, false
	}
	return ID{Scope: m[1], Counter: m[2]}, true
}

// Contains reports whether text embeds the bracketed form of id.
func Contains(text string, id ID) bool {
	return strings.Contains(text, id.Bracketed())
}

// Strip removes bracketed identifiers together with a single space after each.
// Removing one identifier can expose another, so it repeats until nothing changes.
// Other bracketed text is left untouched and Strip(Strip(s)) == Strip(s).
func Strip(text string) string {
	for strings.Contains(text, "["+Prefix) {
		stripped := stripRe.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	return text
}
