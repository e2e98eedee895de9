package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
)

// settingsCacheTTL bounds how long a cached value (or cached absence) may be
// served. Writes through this process invalidate immediately; writes from
// another process (the admin console runs its own binary) converge within
// one TTL.
const settingsCacheTTL = 30 * time.Second

// SettingsService implements setting.Service. Reads are cached in-process;
// every write invalidates the touched keys so admin changes take effect on
// the next read.
type SettingsService struct {
	repo   setting.Repository
	logger *logger.Logger
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedSetting
}

type cachedSetting struct {
	value     string
	present   bool
	expiresAt time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo setting.Repository, log *logger.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: log,
		now:    time.Now,
		cache:  make(map[string]cachedSetting),
	}
}

// GetString returns the raw stored value for key. ok is false when the key
// has never been set. Storage failures propagate; absence does not.
func (s *SettingsService) GetString(ctx context.Context, key string) (string, bool, error) {
	now := s.now()

	s.mu.RLock()
	entry, hit := s.cache[key]
	s.mu.RUnlock()
	if hit && now.Before(entry.expiresAt) {
		return entry.value, entry.present, nil
	}

	st, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			s.store(key, cachedSetting{expiresAt: now.Add(settingsCacheTTL)})
			return "", false, nil
		}
		return "", false, err
	}

	s.store(key, cachedSetting{value: st.Value, present: true, expiresAt: now.Add(settingsCacheTTL)})
	return st.Value, true, nil
}

// GetBool interprets the stored value as a boolean. An unset AI sub-flag
// with a false default falls back to the master ai_features_enabled flag.
func (s *SettingsService) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, ok, err := s.GetString(ctx, key)
	if err != nil {
		return false, err
	}
	if ok {
		return setting.TrueIsh(value), nil
	}

	// The cascade only applies when the caller did not already opt in via
	// the default: a true default wins over the master flag.
	if !def && setting.IsAISubFlag(key) {
		master, mok, err := s.GetString(ctx, setting.KeyAIFeaturesEnabled)
		if err != nil {
			return false, err
		}
		if mok && setting.TrueIsh(master) {
			return true, nil
		}
	}

	return def, nil
}

// GetNumber interprets the stored value as a float. Absent keys read as 0.
func (s *SettingsService) GetNumber(ctx context.Context, key string) (float64, error) {
	value, ok, err := s.GetString(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigParseError(key, err)
	}
	return n, nil
}

// Set upserts a setting and invalidates its cache entry
func (s *SettingsService) Set(ctx context.Context, key, value, description string, updatedBy int64) error {
	st := &setting.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now(),
	}
	if description != "" {
		st.Description = &description
	}

	if err := s.repo.Upsert(ctx, st); err != nil {
		s.logger.ErrorWithErr(err, "Failed to upsert setting")
		return err
	}

	s.invalidate(key)

	s.logger.WithFields(map[string]interface{}{
		"key":        key,
		"updated_by": updatedBy,
	}).Info("Setting updated")

	return nil
}

// InitializeDefaults upserts every shipped default. Existing values are
// overwritten: this resets to shipped defaults rather than seeding once.
func (s *SettingsService) InitializeDefaults(ctx context.Context, adminUserID int64) error {
	defaults, err := setting.Defaults()
	if err != nil {
		return errors.Internal("Failed to load shipped defaults", err)
	}

	for _, d := range defaults {
		if err := s.Set(ctx, d.Key, d.Value, d.Description, adminUserID); err != nil {
			return err
		}
	}

	s.logger.Infof("Initialized %d default settings", len(defaults))
	return nil
}

// List returns all stored settings
func (s *SettingsService) List(ctx context.Context) ([]*setting.Setting, error) {
	return s.repo.List(ctx)
}

func (s *SettingsService) store(key string, entry cachedSetting) {
	s.mu.Lock()
	s.cache[key] = entry
	s.mu.Unlock()
}

func (s *SettingsService) invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}
