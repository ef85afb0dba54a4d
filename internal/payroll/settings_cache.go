package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	settingsCacheKeyPrefix = "payroll:settings:"
	settingsCacheTTL       = time.Hour
)

func settingsCacheKey(companyID string) string {
	return settingsCacheKeyPrefix + companyID
}

// statutoryConfig is the cached unit: settings plus slab table, fetched and
// invalidated together since a run needs both.
type statutoryConfig struct {
	Settings *PayrollSettings `json:"settings"`
	Slabs    []TaxSlab        `json:"slabs"`
}

// settingsCache is a read-through redis cache over SettingsRepository.
// Companies without settings are cached too (nil settings), so payroll for
// an unconfigured tenant does not hammer the database.
type settingsCache struct {
	repo   SettingsRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func newSettingsCache(repo SettingsRepository, rdb *redis.Client, logger *zap.Logger) *settingsCache {
	return &settingsCache{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: logger,
	}
}

func (c *settingsCache) Get(ctx context.Context, companyID string) (*PayrollSettings, []TaxSlab, error) {
	cacheKey := settingsCacheKey(companyID)

	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cfg statutoryConfig
			if json.Unmarshal([]byte(cached), &cfg) == nil {
				return cfg.Settings, cfg.Slabs, nil
			}
		}
	}

	v, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		cfg := statutoryConfig{}

		settings, err := c.repo.GetByCompany(ctx, companyID)
		switch {
		case err == nil:
			cfg.Settings = settings
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Unconfigured tenant: statutory amounts stay zero.
		default:
			return nil, err
		}

		if cfg.Settings != nil && cfg.Settings.TDSEnabled {
			slabs, err := c.repo.ListTaxSlabs(ctx, companyID)
			if err != nil {
				return nil, err
			}
			cfg.Slabs = slabs
		}

		if c.rdb != nil {
			if jsonData, err := json.Marshal(cfg); err == nil {
				c.rdb.Set(ctx, cacheKey, jsonData, settingsCacheTTL)
			}
		}

		return cfg, nil
	})
	if err != nil {
		return nil, nil, err
	}

	cfg := v.(statutoryConfig)
	return cfg.Settings, cfg.Slabs, nil
}

func (c *settingsCache) Invalidate(ctx context.Context, companyID string) {
	if c.rdb == nil {
		return
	}
	cacheKey := settingsCacheKey(companyID)
	if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("failed to invalidate payroll settings cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}
