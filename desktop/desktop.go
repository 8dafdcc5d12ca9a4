// Package desktop reads the small slice of the desktop-entry world
// this tool needs: the Exec template of an application and the
// locations of mimeinfo.cache files.
package desktop

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
)

const mainGroup = "[Desktop Entry]"

// Entry holds the keys read from a desktop file's main group.
// Localized keys and groups other than [Desktop Entry] are ignored.
type Entry struct {
	Name     string
	Exec     string
	Terminal bool
}

// Load finds and parses the desktop entry for an application id (the
// desktop file base name without the .desktop suffix). A missing or
// unreadable entry yields a zero Entry, never an error; the run must
// survive applications that are listed in a cache but not installed.
func Load(appId string) Entry {
	for _, dir := range entryDirs() {
		// Ids with hyphens such as foo-bar may mean foo/bar.desktop.
		paths := []string{
			filepath.Join(dir, appId+".desktop"),
			filepath.Join(dir, strings.Replace(appId, "-", "/", 1)+".desktop"),
		}
		for _, path := range paths {
			file, err := os.Open(path)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("cannot open desktop file")
				continue
			}
			entry, err := Parse(file)
			file.Close()
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("cannot parse desktop file")
				continue
			}
			return entry
		}
	}
	log.Debug().Str("app", appId).Msg("no desktop entry found")
	return Entry{}
}

// Parse reads a desktop file and extracts the main group's keys.
// The first occurrence of a key wins.
func Parse(r io.Reader) (Entry, error) {
	var entry Entry
	var seenExec, seenName, seenTerminal bool
	inMain := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inMain = line == mainGroup
			continue
		}
		if !inMain {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Exec":
			if !seenExec {
				entry.Exec = value
				seenExec = true
			}
		case "Name":
			if !seenName {
				entry.Name = value
				seenName = true
			}
		case "Terminal":
			if !seenTerminal {
				entry.Terminal = value == "true"
				seenTerminal = true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// entryDirs returns the applications directories in order of priority,
// XDG_DATA_HOME first.
func entryDirs() []string {
	dirs := make([]string, 0, len(xdg.DataDirs)+1)
	dirs = append(dirs, filepath.Join(xdg.DataHome, "applications"))
	for _, dir := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// CacheFiles returns the existing mimeinfo.cache files in reverse
// precedence order: system directories first, XDG_DATA_HOME last.
// The consumer keeps the last VIEWER line it reads for a MIME type,
// so the most authoritative cache must be emitted last.
func CacheFiles() []string {
	var files []string
	for i := len(xdg.DataDirs) - 1; i >= 0; i-- {
		files = appendCacheFile(files, xdg.DataDirs[i])
	}
	return appendCacheFile(files, xdg.DataHome)
}

func appendCacheFile(files []string, root string) []string {
	path := filepath.Join(root, "applications", "mimeinfo.cache")
	if _, err := os.Stat(path); err == nil {
		files = append(files, path)
	}
	return files
}
