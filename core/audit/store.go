package audit

import (
	"context"
	"fmt"
	"time"

	"mpu-janitor/core/database"
	"mpu-janitor/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	saveTimeout = 5 * time.Second
)

// Filter narrows List results.
type Filter struct {
	// Bucket restricts records to one bucket when set.
	Bucket string
	// Limit caps the number of records, newest first.
	Limit int
}

// Store reads and writes audit records.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a Store on db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Open connects the configured database and migrates the audit table.
// Auditing is optional: it returns nil when disabled, and logs and returns
// nil when the database is unreachable.
func Open(ctx context.Context, cfg database.Config, logger *zap.Logger) *Store {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Warn("Optional audit database connection failed", zap.Error(err))
		return nil
	}

	store := NewStore(db, logger)
	if err := store.Migrate(ctx); err != nil {
		logger.Warn("Audit table migration failed", zap.Error(err))
		return nil
	}

	logger.Info("Connected to audit database", zap.String("driver", cfg.Driver))
	return store
}

// Migrate creates or updates the audit table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate audit table: %w", err)
	}
	return nil
}

// Save inserts rec, assigning an ID and timestamp when missing.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := s.db.WithContext(ctx).Model(&Record{})
	if f.Bucket != "" {
		q = q.Where("bucket = ?", f.Bucket)
	}

	var records []Record
	if err := q.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}

// Observer returns a reconcile.Observer saving every outcome. Save failures
// are logged and never affect the reconciliation.
func (s *Store) Observer() reconcile.Observer {
	return func(o reconcile.BucketOutcome) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := s.Save(ctx, FromOutcome(o)); err != nil {
			s.logger.Warn("Failed to record audit entry", zap.String("bucket", o.Bucket), zap.Error(err))
		}
	}
}
