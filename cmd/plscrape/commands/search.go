package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"plscrape/lib/catalogue"
	"plscrape/lib/report"
	"plscrape/lib/search"
	"plscrape/lib/servicemap"
)

func runSearch(ctx context.Context) error {
	// validate before touching the network
	if flags.batchFile == "" {
		if flags.libservice == "" {
			return fmt.Errorf("please specify the library service to search, or provide an input file")
		}
		if flags.title == "" && flags.author == "" {
			return fmt.Errorf("please specify a title and/or an author")
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	services, invalid, err := servicemap.Load(cfg.BackendsFile)
	if err != nil {
		return fmt.Errorf("failed to read backends file %q: %w", cfg.BackendsFile, err)
	}
	if invalid > 0 {
		slog.Warn("backends file has malformed entries", "file", cfg.BackendsFile, "count", invalid)
	}

	fetchClient := newFetchClient(cfg)
	searcher := search.New(newRegistry(cfg, fetchClient), services, fetchClient)

	var sessions []*catalogue.SearchSession
	if flags.batchFile != "" {
		f, err := os.Open(flags.batchFile)
		if err != nil {
			return err
		}
		defer f.Close()

		sessions, err = searcher.RunFile(ctx, f)
		if err != nil {
			return err
		}
	} else {
		session, err := searcher.Run(ctx, flags.libservice, flags.title, flags.author)
		if err != nil {
			return err
		}
		sessions = []*catalogue.SearchSession{session}
	}

	for _, session := range sessions {
		report.WriteConsole(os.Stdout, session)
		for _, msg := range session.Errors {
			slog.Error("search error", "service", session.Service, "title", session.Title, "err", msg)
		}
	}

	return writeReport(sessions)
}

func writeReport(sessions []*catalogue.SearchSession) error {
	f, err := os.Create(flags.outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.WriteHTML(f, sessions); err != nil {
		return err
	}
	slog.Info("wrote html report", "path", flags.outputFile)
	return nil
}
