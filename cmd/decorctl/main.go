// Command decorctl drives the catalog controller and the lead intake from a
// terminal against the live catalog API.
package main

import (
	"fmt"
	"os"
	"time"

	"edenstone/internal/config"
	"edenstone/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiBase string
	timeout time.Duration
	verbose bool
	output  string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "decorctl",
		Short: "Browse the decor catalog and submit callback requests",
		Long: `decorctl talks to the same catalog and lead intake API as the storefront.

Examples:
  decorctl list --stone-type Кварц --sort price_asc --pages 2
  decorctl get quartz-white -o yaml
  decorctl lead --phone "+7 900 000-00-00" --consent`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&apiBase, "api", "", "Catalog API base URL (default: API_BASE_URL or https://eden-stone.ru)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Upstream request timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")

	root.AddCommand(newListCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newLeadCmd())
	return root
}

func setup(cmd *cobra.Command, _ []string) error {
	switch output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if verbose {
		logger.Init("development")
	} else {
		logger.Replace(zap.NewNop())
	}

	if apiBase == "" {
		apiBase = config.LoadConfig().APIBaseURL
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
