package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/alert"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/job"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/engine"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/logger"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/market"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/metrics"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier/email"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier/telegram"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier/webhook"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/archive"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deal engine server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting deal engine server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	buyers, closeBuyers, err := openBuyerStore(cfg.Storage.Buyers, log)
	if err != nil {
		return fmt.Errorf("opening buyer store: %w", err)
	}
	defer closeBuyers()

	reports := report.NewMemoryStore(cfg.Storage.Reports.MaxSize)
	jobs := job.NewStore(cfg.Storage.Reports.MaxSize)

	archiver, err := openArchiver(cfg.Storage.Archive, log)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	alerts, err := buildAlerts(cfg.Alerts, log)
	if err != nil {
		return fmt.Errorf("configuring alerts: %w", err)
	}

	var reg *metrics.Registry
	engineOpts := []engine.Option{engine.WithLogger(log)}
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		engineOpts = append(engineOpts, engine.WithObserver(reg))
	}

	analyzer := engine.New(cfg.Engine, market.NewDefaultStatic(), engineOpts...)

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: cfg.Metrics.Path,
	}, api.Deps{
		Analyzer: analyzer,
		Buyers:   buyers,
		Reports:  reports,
		Jobs:     jobs,
		Archiver: archiver,
		Alerts:   alerts,
		Metrics:  reg,
	}, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down deal engine server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func openBuyerStore(cfg config.BuyerStorageConfig, log *zap.Logger) (buyer.Store, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		store, err := buyer.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := seedBuyers(store, cfg.SeedFile, log); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		store := buyer.NewMemoryStore()
		if err := seedBuyers(store, cfg.SeedFile, log); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func seedBuyers(store buyer.Store, seedFile string, log *zap.Logger) error {
	if seedFile == "" {
		return nil
	}
	seeded, err := buyer.LoadSeedFile(seedFile)
	if err != nil {
		return fmt.Errorf("loading buyer seed file: %w", err)
	}
	if err := buyer.Seed(context.Background(), store, seeded); err != nil {
		return fmt.Errorf("seeding buyers: %w", err)
	}
	log.Info("seeded buyer pool",
		zap.String("file", seedFile),
		zap.Int("buyers", len(seeded)),
	)
	return nil
}

func buildAlerts(cfg config.AlertsConfig, log *zap.Logger) (*alert.Evaluator, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	registry := notifier.NewRegistry()
	for _, nc := range cfg.Notifiers {
		var n notifier.Notifier
		switch nc.Type {
		case "webhook":
			n = &webhook.Webhook{}
		case "email":
			n = &email.Email{}
		case "telegram":
			n = &telegram.Telegram{}
		default:
			return nil, fmt.Errorf("unknown notifier type %q", nc.Type)
		}
		if err := n.Init(nc); err != nil {
			return nil, err
		}
		if err := registry.Register(n); err != nil {
			return nil, err
		}
	}

	evaluator := alert.NewEvaluator(registry, cfg.Rules)
	if cfg.Cooldown > 0 {
		evaluator.SetCooldown(cfg.Cooldown)
	}

	log.Info("deal alerts enabled",
		zap.Int("rules", len(cfg.Rules)),
		zap.Int("notifiers", len(cfg.Notifiers)),
	)
	return evaluator, nil
}

func openArchiver(cfg config.ArchiveConfig, log *zap.Logger) (*archive.Archiver, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var backend archive.Backend
	var err error
	switch cfg.Type {
	case "s3":
		backend, err = archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		backend, err = archive.NewLocalFS(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	log.Info("report archive enabled", zap.String("type", cfg.Type))
	return archive.NewArchiver(backend, log), nil
}
