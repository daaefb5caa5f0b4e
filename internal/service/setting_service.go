package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type settingStore interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

const settingCachePrefix = "setting:"

// SettingService exposes the flat settings map. Reads are optional
// configuration lookups: any failure, including a missing key, degrades to
// a nil value instead of propagating. Writes propagate errors normally.
type SettingService struct {
	store  settingStore
	cache  *CacheService
	logger *zap.Logger
}

// NewSettingService constructs the setting service.
func NewSettingService(store settingStore, cache *CacheService, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{store: store, cache: cache, logger: logger}
}

// Get returns the raw JSON value for a key, or nil when the key is absent
// or the read fails.
func (s *SettingService) Get(ctx context.Context, key string) json.RawMessage {
	var cached json.RawMessage
	if hit, err := s.cache.Get(ctx, settingCachePrefix+key, &cached); err == nil && hit {
		return cached
	}

	setting, err := s.store.Get(ctx, key)
	if err != nil {
		// Missing keys and transient failures look the same to callers:
		// no value. The failure still gets logged for diagnostics.
		s.logger.Debug("setting read failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, settingCachePrefix+key, setting.Value)
	}
	return setting.Value
}

// Set upserts a value under a key. Any JSON value is accepted; no schema is
// applied.
func (s *SettingService) Set(ctx context.Context, key string, value json.RawMessage) (*models.Setting, error) {
	if key == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "key is required")
	}
	if len(value) == 0 {
		value = json.RawMessage("null")
	}

	setting := &models.Setting{Key: key, Value: value}
	if err := s.store.Upsert(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save setting")
	}

	s.cache.Invalidate(ctx, settingCachePrefix+key)
	s.logger.Info("setting saved", zap.String("key", key))
	return setting, nil
}
