// Package cli wires configuration, logging, the cache store, and the
// explorer gateway into the analysis run.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/chainlens/internal/analysis/report"
	"github.com/vietddude/chainlens/internal/core/config"
	"github.com/vietddude/chainlens/internal/core/domain"
	"github.com/vietddude/chainlens/internal/infra/cache"
	"github.com/vietddude/chainlens/internal/infra/esplora"
)

var (
	cfgPath   string
	isDebug   bool
	addresses []string
	txid      string
	blockHash string

	flowDepth        int
	clusterDepth     int
	largeTxThreshold float64
	outputPath       string
)

var rootCmd = &cobra.Command{
	Use:   "chainlens",
	Short: "Bitcoin chain analysis tool",
	Long: `Chainlens analyzes bitcoin addresses, transactions, and blocks through an
esplora-compatible explorer API: wallet clustering, forward fund-flow
tracing, and large-transaction block scans. Results are written as a JSON
report; explorer responses are cached on disk across runs.`,
	RunE: runAnalysis,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")

	rootCmd.Flags().StringSliceVar(&addresses, "addresses", nil, "bitcoin address(es) to analyze")
	rootCmd.Flags().StringVar(&txid, "transaction", "", "transaction ID to trace")
	rootCmd.Flags().StringVar(&blockHash, "block", "", "block hash to scan")
	rootCmd.Flags().IntVar(&flowDepth, "flow-depth", 0, "depth for transaction flow tracing")
	rootCmd.Flags().IntVar(&clusterDepth, "cluster-depth", 0, "depth for wallet cluster exploration")
	rootCmd.Flags().Float64Var(&largeTxThreshold, "large-tx-threshold", 0, "large transaction threshold in BTC")
	rootCmd.Flags().StringVar(&outputPath, "output", "report.json", "output file for the analysis report")

	rootCmd.SilenceUsage = true
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		return err
	}

	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	if len(addresses) == 0 && txid == "" && blockHash == "" {
		slog.Warn("Nothing to analyze; specify --addresses, --transaction, or --block")
		return nil
	}

	store, err := cache.NewPebbleStore(cfg.Cache.Path)
	if err != nil {
		slog.Error("Failed to open cache", "path", cfg.Cache.Path, "error", err)
		return err
	}
	defer store.Close()

	client := esplora.New(esplora.Config{
		BaseURL:     cfg.API.BaseURL,
		PriceURL:    cfg.API.PriceURL,
		Timeout:     cfg.API.Timeout,
		MaxRetries:  cfg.API.MaxRetries,
		RetryDelay:  cfg.API.RetryDelay,
		VolatileTTL: cfg.Cache.VolatileTTL,
	}, store)

	assembler := report.NewAssembler(client, report.Config{
		ClusterDepth: cfg.Analysis.ClusterDepth,
		FlowDepth:    cfg.Analysis.FlowDepth,
		ThresholdSat: domain.BTCToSat(cfg.Analysis.LargeTxThresholdBTC),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rep, err := assembler.Assemble(ctx, addresses, txid, blockHash)
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		return err
	}

	if err := report.Write(rep, outputPath); err != nil {
		slog.Error("Failed to write report", "path", outputPath, "error", err)
		return err
	}
	slog.Info("Report written", "path", outputPath, "run_id", rep.RunID)
	return nil
}

// loadConfig reads the config file and applies flag overrides. A missing
// file is only an error when --config was set explicitly.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	var cfg *config.AppConfig
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && !cmd.Flags().Changed("config") {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("flow-depth") {
		cfg.Analysis.FlowDepth = flowDepth
	}
	if cmd.Flags().Changed("cluster-depth") {
		cfg.Analysis.ClusterDepth = clusterDepth
	}
	if cmd.Flags().Changed("large-tx-threshold") {
		cfg.Analysis.LargeTxThresholdBTC = largeTxThreshold
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
