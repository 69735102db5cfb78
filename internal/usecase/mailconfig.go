package usecase

import (
	"context"
	"encoding/json"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	domrepo "github.com/roteirods-byte/autotrader/internal/domain/repository"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
)

// MailConfig stores the notification sender settings. Field validation
// happens at the HTTP boundary; here we only persist.
type MailConfig struct {
	store   domrepo.StateStore
	logger  *applogger.Logger
	metrics domrepo.Metrics
}

func NewMailConfig(store domrepo.StateStore, l *applogger.Logger, m domrepo.Metrics) *MailConfig {
	return &MailConfig{store: store, logger: l, metrics: m}
}

// Get returns the saved configuration, or ok=false when none exists or the
// stored document does not parse.
func (mc *MailConfig) Get(ctx context.Context) (models.MailConfig, bool) {
	b, ok, err := mc.store.Get(ctx, domrepo.KeyMailConfig)
	if err != nil || !ok {
		if err != nil {
			if mc.logger != nil {
				mc.logger.Warn("mail config load failed", applogger.Error(err))
			}
			if mc.metrics != nil {
				mc.metrics.StoreError("mail_load")
			}
		}
		return models.MailConfig{}, false
	}

	var cfg models.MailConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return models.MailConfig{}, false
	}
	return cfg, true
}

// Save persists the configuration.
func (mc *MailConfig) Save(ctx context.Context, cfg models.MailConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := mc.store.Set(ctx, domrepo.KeyMailConfig, b); err != nil {
		if mc.logger != nil {
			mc.logger.Error("mail config save failed", applogger.Error(err))
		}
		if mc.metrics != nil {
			mc.metrics.StoreError("mail_save")
		}
		return ErrSaveFailed
	}
	return nil
}
