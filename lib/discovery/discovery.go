// Package discovery works out which catalogue platform serves a library
// service that is not yet in the backend map.
package discovery

import (
	"context"
	"log/slog"
	"strings"

	"plscrape/lib/catalogue"
	"plscrape/lib/fetch"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("discovery")

// Discover probes the service against every registered backend in
// preference order. A backend matches when fetching its candidate catalogue
// url ends with status 200 on a final url that still mentions the service;
// a 200 that redirected somewhere unrelated is a miss. Probe failures are
// logged and the next backend is tried. The result is a candidate for the
// backend map; appending it there is the caller's job.
func Discover(ctx context.Context, fetchClient *fetch.Client, registry *catalogue.Registry, service string) (string, bool) {
	ctx, span := tracer.Start(ctx, "discovery:Discover")
	defer span.End()

	service = strings.ToLower(strings.TrimSpace(service))

	for _, id := range registry.IDs() {
		backend, ok := registry.Backend(id)
		if !ok {
			continue
		}
		candidate := backend.CatalogueURL(service)
		slog.InfoContext(ctx, "probing backend", "backend", id, "url", candidate)

		probe, err := fetchClient.Probe(ctx, candidate)
		if err != nil {
			slog.WarnContext(ctx, "probe failed", "backend", id, "err", err)
			continue
		}
		if probe.StatusCode != 200 {
			slog.InfoContext(ctx, "backend rejected", "backend", id, "status", probe.StatusCode)
			continue
		}
		if !strings.Contains(probe.FinalURL, service) {
			slog.InfoContext(
				ctx, "backend rejected, redirected away",
				"backend", id,
				"final_url", probe.FinalURL,
			)
			continue
		}

		slog.InfoContext(ctx, "backend matched", "backend", id, "final_url", probe.FinalURL)
		return id, true
	}

	return "", false
}
