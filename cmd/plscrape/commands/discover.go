package commands

import (
	"context"
	"fmt"
	"log/slog"

	"plscrape/lib/discovery"
	"plscrape/lib/servicemap"
)

func runDiscover(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetchClient := newFetchClient(cfg)
	registry := newRegistry(cfg, fetchClient)

	backendID, found := discovery.Discover(ctx, fetchClient, registry, flags.discover)
	if !found {
		fmt.Printf("no matching backend found for %q\n", flags.discover)
		return nil
	}

	fmt.Printf("%s, %s\n", flags.discover, backendID)

	if flags.save {
		if err := servicemap.Append(cfg.BackendsFile, flags.discover, backendID); err != nil {
			return err
		}
		slog.Info("saved mapping", "file", cfg.BackendsFile, "service", flags.discover, "backend", backendID)
	}
	return nil
}
