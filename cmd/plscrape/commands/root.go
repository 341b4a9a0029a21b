package commands

import (
	"context"
	"fmt"
	"os"

	"plscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var flags struct {
	title      string
	author     string
	libservice string
	batchFile  string
	outputFile string
	discover   string
	save       bool
	configFile string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "plscrape",
	Short: "plscrape searches public library catalogue websites for book availability.",
	Long: `plscrape searches public library catalogue websites by scraping their
search result pages. Results go to the terminal and to an html report.

With --discover it instead probes which catalogue platform serves an
unconfigured library service; --discover takes priority over searching.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(flags.verbose)
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.title, "title", "t", "", "book title to search for")
	rootCmd.Flags().StringVarP(&flags.author, "author", "a", "", "author to search for")
	rootCmd.Flags().StringVarP(&flags.libservice, "libservice", "l", "", "library service to search (e.g. islington)")
	rootCmd.Flags().StringVarP(&flags.batchFile, "file", "f", "", "batch input file of param=value lines")
	rootCmd.Flags().StringVarP(&flags.outputFile, "output", "o", "output.html", "html report output path")
	rootCmd.Flags().StringVarP(&flags.discover, "discover", "d", "", "probe which backend serves this library service")
	rootCmd.Flags().BoolVar(&flags.save, "save", false, "append a discovered mapping to the backends file")
	rootCmd.Flags().StringVar(&flags.configFile, "config", "plscrape.json5", "config file path")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if flags.discover != "" {
		return runDiscover(cmd.Context())
	}
	return runSearch(cmd.Context())
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
