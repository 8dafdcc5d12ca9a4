// Package resolve turns a winning application id into the command
// line written to the VIEWER directive.
package resolve

import (
	"strings"

	"github.com/rs/zerolog/log"

	"mime2lynx/desktop"
)

// Resolver resolves application ids to command lines. Overrides are
// returned verbatim; everything else goes through the desktop-entry
// loader once and is cached in normalized form for the rest of the run.
type Resolver struct {
	overrides map[string]string
	cache     map[string]string
	load      func(string) desktop.Entry
}

// New builds a Resolver over an override table. A nil loader means
// desktop.Load.
func New(overrides map[string]string, load func(string) desktop.Entry) *Resolver {
	if load == nil {
		load = desktop.Load
	}
	return &Resolver{
		overrides: overrides,
		cache:     make(map[string]string),
		load:      load,
	}
}

// Resolve returns the command line for an application id. An unknown
// application resolves to an empty string rather than an error.
func (r *Resolver) Resolve(appId string) string {
	if cmd, ok := r.overrides[appId]; ok {
		// Override templates are trusted as already viewer-compatible.
		return cmd
	}
	if cmd, ok := r.cache[appId]; ok {
		return cmd
	}

	entry := r.load(appId)
	cmd := Normalize(entry.Exec)
	if cmd == "" {
		log.Warn().Str("app", appId).Msg("no usable Exec for application")
	}
	r.cache[appId] = cmd
	return cmd
}

// Normalize rewrites a desktop-entry Exec template into the single
// %s placeholder form the viewer configuration expects. It is
// idempotent: normalizing its own output changes nothing.
func Normalize(exec string) string {
	return insertTerminator(collapseFieldCodes(exec))
}

// collapseFieldCodes replaces every %<letter> field code (%f, %u, %F,
// %U, %c, ...) with the generic %s argument placeholder.
func collapseFieldCodes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+1 < len(s) && isLetter(s[i+1]) {
			b.WriteString("%s")
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// insertTerminator puts " -- " in front of the first whitespace-led
// placeholder so a filename starting with a dash cannot be taken for
// an option. Commands that already carry a terminator are left alone.
func insertTerminator(s string) string {
	if strings.Contains(s, " -- ") {
		return s
	}
	for i := 0; i+2 < len(s); i++ {
		if (s[i] == ' ' || s[i] == '\t') && s[i+1] == '%' && s[i+2] == 's' {
			return s[:i] + " --" + s[i:]
		}
	}
	return s
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
