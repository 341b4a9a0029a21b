// Package search runs catalogue searches end to end: resolve the backend
// for a library service, build the search url, fetch and parse the results
// page, and hand the markup to the backend for extraction.
package search

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"plscrape/lib/catalogue"
	"plscrape/lib/fetch"
	"plscrape/lib/servicemap"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("search")

type Searcher struct {
	Registry *catalogue.Registry
	Services servicemap.Map
	Fetch    *fetch.Client
}

func New(registry *catalogue.Registry, services servicemap.Map, fetchClient *fetch.Client) *Searcher {
	return &Searcher{
		Registry: registry,
		Services: services,
		Fetch:    fetchClient,
	}
}

// Run performs one search. Fetch and parse problems are recorded on the
// session and leave it empty; the only returned error is an unconfigured
// library service (catalogue.ErrServiceNotConfigured), which callers treat
// as fatal.
func (s *Searcher) Run(ctx context.Context, service, title, author string) (*catalogue.SearchSession, error) {
	ctx, span := tracer.Start(ctx, "search:Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("service", service),
		attribute.String("title", title),
		attribute.String("author", author),
	)

	session := &catalogue.SearchSession{
		Title:   strings.TrimSpace(title),
		Author:  strings.TrimSpace(author),
		Service: strings.ToLower(strings.TrimSpace(service)),
	}

	if session.Title == "" && session.Author == "" {
		session.Errorf("must supply title and/or author")
		return session, nil
	}

	backend, err := s.Registry.Resolve(s.Services, session.Service)
	if err != nil {
		return nil, err
	}

	session.CatalogueURL = backend.CatalogueURL(session.Service)
	session.SearchURL = backend.SearchURL(session.CatalogueURL, session.Title, session.Author)

	slog.InfoContext(
		ctx, "running search",
		"service", session.Service,
		"title", session.Title,
		"author", session.Author,
		"url", session.SearchURL,
	)

	raw, err := s.Fetch.GetHTML(ctx, session.SearchURL)
	if err != nil {
		session.Errorf("could not get web page: %s", err)
		return session, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(raw))
	if err != nil {
		session.Errorf("could not parse web page: %s", err)
		return session, nil
	}

	session.Items = backend.SearchResults(ctx, doc)
	slog.InfoContext(ctx, "search finished", "items_found", len(session.Items))
	return session, nil
}
