package cmd

import (
	"context"
	"errors"
	"fmt"

	"mpu-janitor/core/audit"
	"mpu-janitor/core/config"
	"mpu-janitor/core/logger"
	"mpu-janitor/core/metrics"
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"

	"go.uber.org/zap"
)

var errMissingProfile = errors.New("--profile is required for the aws provider")

// app bundles what every command needs once setup succeeded.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   storage.Client
	identity *storage.Identity
	audit    *audit.Store
	metrics  *metrics.Recorder
}

// loadConfig reads env/.env configuration and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStorageFlags(&cfg.Storage)
	return cfg, nil
}

func applyStorageFlags(cfg *storage.Config) {
	if profileFlag != "" {
		cfg.Profile = profileFlag
	}
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if regionFlag != "" {
		cfg.Region = regionFlag
	}
}

// validateStorage rejects setups that can only fail later, bucket by bucket.
func validateStorage(cfg storage.Config) error {
	if !cfg.IsValidProvider() {
		return fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
	if cfg.Provider == storage.ProviderAWS && cfg.Endpoint == "" && cfg.Profile == "" && cfg.AccessKey == "" {
		return errMissingProfile
	}
	return nil
}

// setup loads configuration, verifies credentials and connects storage.
// The audit store is optional: a failed connection is logged and skipped.
func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := validateStorage(cfg.Storage); err != nil {
		return nil, err
	}

	identity, err := storage.VerifyIdentity(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	if identity.ARN != "" {
		logg.Info("Using credentials", zap.String("arn", identity.ARN), zap.String("account", identity.Account))
	}

	client, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logg,
		client:   client,
		identity: identity,
		metrics:  metrics.NewRecorder(),
	}
	a.audit = audit.Open(ctx, cfg.Database, logg)

	return a, nil
}

// observer fans outcomes out to metrics and, when enabled, the audit store.
func (a *app) observer() reconcile.Observer {
	obs := []reconcile.Observer{a.metrics.Observe}
	if a.audit != nil {
		obs = append(obs, a.audit.Observer())
	}
	return reconcile.Observers(obs...)
}

// reconcileOptions merges command flags over the configured defaults.
func (a *app) reconcileOptions(dryRun bool, retentionDays int) (reconcile.Options, error) {
	opts, err := a.cfg.Reconcile.Options()
	if err != nil {
		return reconcile.Options{}, fmt.Errorf("invalid RECONCILE_RETENTION_DAYS: %w", err)
	}
	if dryRun {
		opts.DryRun = true
	}
	if retentionDays != 0 {
		days, err := reconcile.RetentionDays(retentionDays)
		if err != nil {
			return reconcile.Options{}, fmt.Errorf("invalid --retention-days: %w", err)
		}
		opts.RetentionDays = days
	}
	return opts, nil
}
