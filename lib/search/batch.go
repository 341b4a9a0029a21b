package search

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"plscrape/lib/catalogue"
)

// RunFile executes searches described by a line-oriented batch file. Each
// line sets a parameter ("param = value"); setting the title triggers one
// search with whatever library service and author are current at that
// point, and parameter values persist across lines until changed.
//
//	l = islington
//	a = grossmith
//	t = diary of a nobody
//	t = bedlam
//
// Malformed lines and unknown parameters are skipped with a warning. An
// unconfigured library service aborts the batch.
func (s *Searcher) RunFile(ctx context.Context, r io.Reader) ([]*catalogue.SearchSession, error) {
	var sessions []*catalogue.SearchSession
	var service, author string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		param, value, found := strings.Cut(line, "=")
		param = strings.TrimSpace(param)
		value = strings.TrimSpace(value)
		if !found {
			slog.Warn("skipping batch line, not a parameter/value pair", "line", line)
			continue
		}

		switch param {
		case "l", "library", "libraryservice":
			service = value
			slog.Debug("libservice set", "value", value)
		case "a", "author":
			author = value
			slog.Debug("author set", "value", value)
		case "t", "title":
			session, err := s.Run(ctx, service, value, author)
			if err != nil {
				return sessions, err
			}
			sessions = append(sessions, session)
		default:
			slog.Warn("skipping batch line, parameter not recognised", "param", param)
		}
	}

	return sessions, scanner.Err()
}
