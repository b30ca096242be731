package cmd

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/eodhub/eoddata-go/accounting"
	"github.com/eodhub/eoddata-go/eoddata"
	"github.com/eodhub/eoddata-go/internal/config"
)

// newTracker builds the accounting tracker from config: started when
// accounting is enabled, seeded from the data file when one exists, with
// the configured quota applied to the configured API key.
func newTracker(cfg *config.Config, log *zap.Logger) (*accounting.Tracker, error) {
	tracker := accounting.NewTracker(log)
	if !cfg.Accounting.Enabled {
		return tracker, nil
	}

	tracker.Start()

	if _, err := os.Stat(cfg.Accounting.DataFile); err == nil {
		if err := tracker.LoadFile(cfg.Accounting.DataFile); err != nil {
			log.Warn("Failed to load accounting data, starting fresh",
				zap.String("file", cfg.Accounting.DataFile),
				zap.Error(err))
		}
	}

	if cfg.Accounting.Quotas.Enabled {
		quota := accounting.Quota{
			Total:    cfg.Accounting.Quotas.Total,
			Calls60s: cfg.Accounting.Quotas.Calls60s,
			Calls24h: cfg.Accounting.Quotas.Calls24h,
		}
		if err := tracker.EnableQuotas(cfg.API.Key, quota); err != nil {
			return nil, fmt.Errorf("failed to enable quotas: %w", err)
		}
	}

	return tracker, nil
}

// saveTracker persists accounting state to the configured data file.
func saveTracker(tracker *accounting.Tracker, cfg *config.Config, log *zap.Logger) {
	if !cfg.Accounting.Enabled {
		return
	}
	if err := tracker.SaveFile(cfg.Accounting.DataFile); err != nil {
		log.Error("Failed to save accounting data",
			zap.String("file", cfg.Accounting.DataFile),
			zap.Error(err))
		return
	}
	log.Info("Accounting data saved", zap.String("file", cfg.Accounting.DataFile))
}

// newClient builds the EODData API client from config.
func newClient(cfg *config.Config, log *zap.Logger, tracker *accounting.Tracker) (*eoddata.Client, error) {
	if cfg.API.Key == "" {
		return nil, fmt.Errorf("no API key configured, set api.key or --api-key")
	}

	opts := []eoddata.Option{
		eoddata.WithBaseURL(cfg.API.BaseURL),
		eoddata.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		eoddata.WithLogger(log),
	}
	if tracker != nil {
		opts = append(opts, eoddata.WithTracker(tracker))
	}
	return eoddata.New(cfg.API.Key, opts...)
}
