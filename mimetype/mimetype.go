// Package mimetype handles MIME type/subtype strings and the wildcard
// patterns used to match them.
package mimetype

import (
	"fmt"
	"strings"
)

// Pattern matches MIME types by exact comparison of each side. An
// empty Type or Subtype matches anything on that side.
type Pattern struct {
	Type    string
	Subtype string
}

// Match reports whether the pattern accepts the given type/subtype pair.
func (p Pattern) Match(typ, subtype string) bool {
	return (p.Type == "" || p.Type == typ) &&
		(p.Subtype == "" || p.Subtype == subtype)
}

func (p Pattern) String() string {
	typ := p.Type
	if typ == "" {
		typ = "*"
	}
	subtype := p.Subtype
	if subtype == "" {
		subtype = "*"
	}
	return typ + "/" + subtype
}

// ParsePattern parses a pattern such as "image/gif", "image", "image/",
// "/gif", "*/*" or "". A missing, empty or "*" side matches anything.
func ParsePattern(s string) (Pattern, error) {
	typ, subtype, _ := strings.Cut(s, "/")
	if strings.Contains(subtype, "/") {
		return Pattern{}, fmt.Errorf("mime pattern %q: too many slashes", s)
	}
	if typ == "*" {
		typ = ""
	}
	if subtype == "*" {
		subtype = ""
	}
	for _, side := range []string{typ, subtype} {
		if strings.ContainsAny(side, "=:; \t") {
			return Pattern{}, fmt.Errorf("mime pattern %q: invalid character", s)
		}
	}
	return Pattern{Type: typ, Subtype: subtype}, nil
}

// Split breaks a concrete "type/subtype" string apart. It reports
// false when either side is empty or the slash is missing.
func Split(s string) (typ, subtype string, ok bool) {
	typ, subtype, found := strings.Cut(s, "/")
	if !found || typ == "" || subtype == "" || strings.Contains(subtype, "/") {
		return "", "", false
	}
	return typ, subtype, true
}
