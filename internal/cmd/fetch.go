package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eodhub/eoddata-go/eoddata"
	"github.com/eodhub/eoddata-go/internal/config"
	"github.com/eodhub/eoddata-go/internal/logger"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch market data from the EODData API",
}

var fetchExchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "List available exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(func(ctx context.Context, f *fetcher) (interface{}, error) {
			return f.client.Exchanges.List(ctx)
		})
	},
}

var fetchSymbolsCmd = &cobra.Command{
	Use:   "symbols <exchange>",
	Short: "List symbols on an exchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(func(ctx context.Context, f *fetcher) (interface{}, error) {
			return f.client.Symbols.List(ctx, args[0])
		})
	},
}

var fetchQuoteCmd = &cobra.Command{
	Use:   "quote <exchange> <symbol>",
	Short: "Fetch the end-of-day quote for a symbol",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		return runFetch(func(ctx context.Context, f *fetcher) (interface{}, error) {
			return f.client.Quotes.Get(ctx, args[0], args[1], date)
		})
	},
}

var fetchFundamentalsCmd = &cobra.Command{
	Use:   "fundamentals <exchange> <symbol>",
	Short: "Fetch fundamental data for a symbol",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(func(ctx context.Context, f *fetcher) (interface{}, error) {
			return f.client.Fundamentals.Get(ctx, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchQuoteCmd.Flags().String("date", "", "date stamp (yyyy-MM-dd, default latest)")

	fetchCmd.AddCommand(fetchExchangesCmd)
	fetchCmd.AddCommand(fetchSymbolsCmd)
	fetchCmd.AddCommand(fetchQuoteCmd)
	fetchCmd.AddCommand(fetchFundamentalsCmd)
}

type fetcher struct {
	client *eoddata.Client
}

func runFetch(fn func(ctx context.Context, f *fetcher) (interface{}, error)) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	tracker, err := newTracker(cfg, log)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, log, tracker)
	if err != nil {
		return err
	}

	result, err := fn(context.Background(), &fetcher{client: client})

	// The increment happened even when the call was denied; persist it
	// either way.
	saveTracker(tracker, cfg, log)

	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("Failed to render result", zap.Error(err))
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
