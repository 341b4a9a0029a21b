package commands

import (
	"os"
	"time"

	"plscrape/lib/catalogue"
	"plscrape/lib/configutil"
	"plscrape/lib/fetch"
	"plscrape/lib/platforms/prism"
	"plscrape/lib/platforms/sirsidynix"
)

type Config struct {
	// the service -> backend mapping file
	BackendsFile      string `json:"backends_file"`
	TimeoutSeconds    int    `json:"timeout_seconds"`
	UserAgent         string `json:"user_agent"`
	DetailConcurrency int    `json:"detail_concurrency"`
	ExactTitle        bool   `json:"exact_title"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

func loadConfig() (Config, error) {
	cfg, err := configutil.Load[Config](flags.configFile)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	if cfg.BackendsFile == "" {
		cfg.BackendsFile = "backends.conf"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return cfg, nil
}

func newFetchClient(cfg Config) *fetch.Client {
	return fetch.NewClient(fetch.Options{
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent: cfg.UserAgent,
	})
}

// newRegistry wires up the known catalogue platforms. Registration order is
// the preference order discovery probes in.
func newRegistry(cfg Config, fetchClient *fetch.Client) *catalogue.Registry {
	registry := catalogue.NewRegistry(fetchClient)
	registry.Register(prism.ID, func(fc *fetch.Client) catalogue.Backend {
		b := prism.New(fc)
		b.ExactTitle = cfg.ExactTitle
		if cfg.DetailConcurrency > 0 {
			b.DetailConcurrency = cfg.DetailConcurrency
		}
		return b
	})
	registry.Register(sirsidynix.ID, func(fc *fetch.Client) catalogue.Backend {
		return sirsidynix.New(fc)
	})
	return registry
}
