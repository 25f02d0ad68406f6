package repository

import (
	"context"
	"encoding/json"

	"chakai-booking/internal/data/entity"
	"chakai-booking/pkg/cache"

	"go.uber.org/zap"
)

const settingsCacheKey = "settings:all"

// cachedSettingRepository keeps the whole settings table under one cache
// key. Reads go through it; writes drop the key.
type cachedSettingRepository struct {
	repo  SettingRepository
	cache cache.Store
	log   *zap.Logger
}

func NewCachedSettingRepository(repo SettingRepository, store cache.Store, log *zap.Logger) SettingRepository {
	return &cachedSettingRepository{
		repo:  repo,
		cache: store,
		log:   log.With(zap.String("repository", "setting_cache")),
	}
}

func (r *cachedSettingRepository) Get(ctx context.Context, key entity.SettingKey) (*entity.Setting, error) {
	settings, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, setting := range settings {
		if setting.Key == key {
			return setting, nil
		}
	}
	return nil, nil
}

func (r *cachedSettingRepository) GetAll(ctx context.Context) ([]*entity.Setting, error) {
	cached, found, err := r.cache.Get(ctx, settingsCacheKey)
	if err != nil {
		r.log.Warn("Settings cache read failed", zap.Error(err))
	}
	if found {
		var settings []*entity.Setting
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return settings, nil
		}
	}

	settings, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(settings); err == nil {
		if err := r.cache.Set(ctx, settingsCacheKey, string(payload)); err != nil {
			r.log.Warn("Settings cache write failed", zap.Error(err))
		}
	}

	return settings, nil
}

func (r *cachedSettingRepository) Set(ctx context.Context, setting *entity.Setting) error {
	if err := r.repo.Set(ctx, setting); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, settingsCacheKey); err != nil {
		r.log.Warn("Settings cache invalidation failed", zap.Error(err))
	}
	return nil
}
