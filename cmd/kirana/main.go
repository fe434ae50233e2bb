package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/google/uuid"

	"github.com/mmynk/kirana/internal/config"
	"github.com/mmynk/kirana/internal/console"
	"github.com/mmynk/kirana/internal/ledger"
	"github.com/mmynk/kirana/internal/metrics"
	"github.com/mmynk/kirana/internal/service"
	"github.com/mmynk/kirana/internal/storage"
	"github.com/mmynk/kirana/internal/storage/jsonfile"
	"github.com/mmynk/kirana/internal/storage/memory"
	"github.com/mmynk/kirana/internal/storage/sqlite"
	"github.com/mmynk/kirana/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	configPath := flag.String("config", getEnv("KIRANA_CONFIG", ""), "path to a YAML config file")
	dryRun := flag.Bool("dry-run", false, "keep the ledger in memory, nothing is saved")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kirana: %v\n", err)
		os.Exit(2)
	}
	if *dryRun {
		cfg.Store = config.StoreMemory
	}

	runID := uuid.NewString()
	logging.SetupWithOptions(logging.Options{Level: logging.ParseLevel(cfg.LogLevel), RunID: runID})

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "store", cfg.Store, "location", store.Location())

	// Settings were checked by config.Load.
	rule, _ := cfg.PromotionRule()
	bands, _ := cfg.Bands()

	m := metrics.New(runID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, loadErr := ledger.Open(ctx, store)
	if loadErr != nil {
		m.LoadFailures.Inc()
	}

	session := console.NewSession(console.Services{
		Catalog:   service.NewCatalogService(l, m),
		Customers: service.NewCustomerService(l, m),
		Billing: service.NewBillingService(l,
			service.WithPromotion(rule),
			service.WithCurrencyPlaces(cfg.CurrencyPlaces),
			service.WithMetrics(m),
		),
	}, os.Stdin, os.Stdout, console.Options{
		Language:       cfg.Language,
		TaxBands:       bands,
		CurrencyPlaces: cfg.CurrencyPlaces,
	})
	if loadErr != nil {
		session.Warn(loadErr)
	}

	var once sync.Once
	var closeErr error
	closeLedger := func(ctx context.Context) error {
		once.Do(func() { closeErr = shutdown(ctx, l, store, m, cfg.MetricsPath) })
		return closeErr
	}

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"ledger": func(ctx context.Context) error {
				slog.Info("Signal received, saving ledger")
				cancel()
				return closeLedger(ctx)
			},
		},
	)

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	select {
	case err := <-done:
		code := 0
		if err != nil {
			slog.Error("Session ended with error", "error", err)
			code = 1
		}
		flushCtx, flushCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer flushCancel()
		if err := closeLedger(flushCtx); err != nil {
			code = 1
		}
		os.Exit(code)
	case code := <-wait:
		os.Exit(code)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return sqlite.New(cfg.DataPath)
	case config.StoreMemory:
		return memory.New(), nil
	default:
		return jsonfile.New(cfg.DataPath)
	}
}

// shutdown makes the final save, exports metrics and closes the store. A
// failed save is printed as well as logged so the operator sees it.
func shutdown(ctx context.Context, l *ledger.Ledger, store storage.Store, m *metrics.Metrics, metricsPath string) error {
	saveErr := l.Flush(ctx)
	if saveErr != nil {
		slog.Error("Final save failed", "location", store.Location(), "error", saveErr)
		fmt.Fprintf(os.Stderr, "kirana: final save failed: %v\n", saveErr)
	} else {
		slog.Info("Ledger saved", "location", store.Location())
	}

	if metricsPath != "" {
		if err := m.WriteTextfile(metricsPath); err != nil {
			slog.Warn("Failed to export metrics", "path", metricsPath, "error", err)
		}
	}

	if err := store.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
	return saveErr
}
