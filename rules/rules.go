// Package rules parses user preference directives and applies them to
// the candidate application lists read from mimeinfo.cache.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"mime2lynx/mimetype"
)

// Mode selects what a preference rule does with its application.
type Mode int

const (
	// Add promotes the application to the front of the candidate list.
	Add Mode = iota
	// Remove demotes the application or drops it entirely.
	Remove
)

// Rule is a single parsed preference directive, e.g. "image/gif:mpv++".
type Rule struct {
	Pattern mimetype.Pattern
	App     string
	Mode    Mode
	// Forced rules (doubled sign) apply regardless of whether the
	// application was already offered for the MIME type.
	Forced bool
}

// Set holds the ordered preference rules and the exec override table.
// Rule order is the order directives were supplied in; later rules
// operate on the list as reshaped by earlier ones.
type Set struct {
	Rules []Rule
	Exec  map[string]string
}

func NewSet() *Set {
	return &Set{Exec: make(map[string]string)}
}

// Add parses one directive. A directive is either a preference rule
//
//	[type[/subtype]:]app{+|++|-|--}
//
// or an exec override
//
//	app=command template with %s
//
// The preference grammar is tried first; a directive matching neither
// is an error.
func (s *Set) Add(directive string) error {
	if rule, ok := parsePrefer(directive); ok {
		s.Rules = append(s.Rules, rule)
		return nil
	}
	if app, cmd, ok := strings.Cut(directive, "="); ok && app != "" && cmd != "" {
		s.AddExec(app, cmd)
		return nil
	}
	return fmt.Errorf("unrecognized directive %q", directive)
}

// AddExec records a command template for an application, replacing any
// earlier template for the same application. The template is used
// verbatim, so it should carry the %s the viewer line needs.
func (s *Set) AddExec(app, cmd string) {
	if !strings.Contains(cmd, "%s") {
		log.Warn().Str("app", app).Str("command", cmd).
			Msg("exec override has no %s placeholder")
	}
	s.Exec[app] = cmd
}

func parsePrefer(directive string) (Rule, bool) {
	rest := directive
	var pattern mimetype.Pattern
	if i := strings.Index(directive, ":"); i >= 0 {
		p, err := mimetype.ParsePattern(directive[:i])
		if err != nil {
			return Rule{}, false
		}
		pattern = p
		rest = directive[i+1:]
	}

	if rest == "" {
		return Rule{}, false
	}
	sign := rest[len(rest)-1]
	if sign != '+' && sign != '-' {
		return Rule{}, false
	}
	n := 1
	for n < len(rest) && rest[len(rest)-1-n] == sign {
		n++
	}
	if n > 2 {
		return Rule{}, false
	}

	app := rest[:len(rest)-n]
	if app == "" || strings.ContainsAny(app, "=: \t") {
		return Rule{}, false
	}
	// A different trailing sign here means something like "app+-".
	if last := app[len(app)-1]; last == '+' || last == '-' {
		return Rule{}, false
	}

	mode := Add
	if sign == '-' {
		mode = Remove
	}
	return Rule{Pattern: pattern, App: app, Mode: mode, Forced: n == 2}, true
}

// Apply runs every rule matching the given MIME type against the
// candidate list, in directive order, and returns the result. The
// first element of the returned list is the winning application.
func (s *Set) Apply(typ, subtype string, candidates []string) []string {
	matched := false
	for _, rule := range s.Rules {
		if !rule.Pattern.Match(typ, subtype) {
			continue
		}
		matched = true

		found := slices.Contains(candidates, rule.App)
		if found {
			candidates = slices.DeleteFunc(candidates, func(app string) bool {
				return app == rule.App
			})
		}
		switch {
		case rule.Mode == Remove && !rule.Forced && found:
			// Single minus demotes instead of deleting.
			candidates = append(candidates, rule.App)
		case rule.Mode == Add && (rule.Forced || found):
			// Single plus promotes only applications already offered.
			candidates = slices.Insert(candidates, 0, rule.App)
		}
	}

	if !matched && len(candidates) > 1 {
		log.Warn().
			Str("mime", typ+"/"+subtype).
			Strs("candidates", candidates).
			Msg("no preference rule matched; keeping cache order")
	}
	return candidates
}
