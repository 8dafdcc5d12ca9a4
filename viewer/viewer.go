// Package viewer converts mimeinfo.cache records into VIEWER
// directive lines.
package viewer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"mime2lynx/mimetype"
	"mime2lynx/resolve"
	"mime2lynx/rules"
)

const header = "[MIME Cache]"

// Processor streams cache records through the preference rules and
// the exec resolver and writes one VIEWER line per record.
type Processor struct {
	Rules    *rules.Set
	Resolver *resolve.Resolver
	Out      io.Writer
}

// Process reads one cache stream. Malformed records are skipped with
// a warning; only read and write failures abort the stream.
func (p *Processor) Process(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			if line != header {
				log.Warn().Str("input", name).Msg("missing [MIME Cache] header")
			}
		}
		if line == "" || line == header {
			continue
		}

		out, err := p.record(line)
		if err != nil {
			log.Warn().Str("input", name).Str("line", line).Err(err).
				Msg("skipping record")
			continue
		}
		if _, err := io.WriteString(p.Out, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// record turns one "type/subtype=a.desktop;b.desktop;" line into a
// VIEWER directive.
func (p *Processor) record(line string) (string, error) {
	mime, list, found := strings.Cut(line, "=")
	if !found || !strings.HasSuffix(list, ";") {
		return "", fmt.Errorf("expected type/subtype=app.desktop;...;")
	}
	typ, subtype, ok := mimetype.Split(mime)
	if !ok {
		return "", fmt.Errorf("bad MIME type %q", mime)
	}

	var candidates []string
	for _, app := range strings.Split(strings.TrimSuffix(list, ";"), ";") {
		app = strings.TrimSuffix(app, ".desktop")
		if app != "" {
			candidates = append(candidates, app)
		}
	}

	candidates = p.Rules.Apply(typ, subtype, candidates)

	// A list drained by forced removals still produces a record, the
	// same as an application without a desktop entry.
	cmd := ""
	if len(candidates) == 0 {
		log.Warn().Str("mime", mime).Msg("every candidate was removed")
	} else {
		cmd = p.Resolver.Resolve(candidates[0])
	}
	return fmt.Sprintf("VIEWER:%s/%s:%s\n", typ, subtype, cmd), nil
}
