// Package servicemap reads and writes the persisted library service ->
// backend mapping. The store is a plain text file, one "service, backend"
// pair per line, tolerant of blank lines and # comments. Everything is
// case-folded to lowercase on the way in.
package servicemap

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Map map[string]string

func (m Map) Lookup(service string) (string, bool) {
	id, ok := m[strings.ToLower(strings.TrimSpace(service))]
	return id, ok
}

// Parse reads the mapping line by line. Malformed lines are skipped with a
// warning; the returned count says how many were.
func Parse(r io.Reader) (Map, int) {
	out := Map{}
	invalid := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		service, backend, found := strings.Cut(line, ",")
		service = strings.TrimSpace(service)
		backend = strings.TrimSpace(backend)
		if !found || service == "" || backend == "" {
			slog.Warn("skipping malformed backend map line", "line", line)
			invalid++
			continue
		}
		out[service] = backend
	}

	return out, invalid
}

func Load(path string) (Map, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	m, invalid := Parse(f)
	return m, invalid, nil
}

// Append persists one discovered mapping at the end of the store. This is
// the step that follows a successful discovery run; discovery itself only
// reports the candidate.
func Append(path, service, backendID string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(
		f, "%s, %s\n",
		strings.ToLower(strings.TrimSpace(service)),
		strings.ToLower(strings.TrimSpace(backendID)),
	)
	return err
}
