package repository

import (
	"context"
	"errors"
	"fmt"

	"chakai-booking/internal/data/entity"
	"chakai-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SettingRepository interface {
	Get(ctx context.Context, key entity.SettingKey) (*entity.Setting, error)
	GetAll(ctx context.Context) ([]*entity.Setting, error)
	Set(ctx context.Context, setting *entity.Setting) error
}

type settingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSettingRepository(db database.PgxIface, log *zap.Logger) SettingRepository {
	return &settingRepository{
		db:  db,
		log: log.With(zap.String("repository", "setting")),
	}
}

func (r *settingRepository) Get(ctx context.Context, key entity.SettingKey) (*entity.Setting, error) {
	query := `SELECT key, value, updated_at FROM settings WHERE key = $1`

	var setting entity.Setting
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, key).Scan(
		&setting.Key,
		&setting.Value,
		&setting.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get setting",
			zap.Error(err),
			zap.String("key", string(key)),
		)
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}

	return &setting, nil
}

func (r *settingRepository) GetAll(ctx context.Context) ([]*entity.Setting, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		r.log.Error("Failed to get settings", zap.Error(err))
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	var settings []*entity.Setting
	for rows.Next() {
		var setting entity.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		settings = append(settings, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}

	return settings, nil
}

func (r *settingRepository) Set(ctx context.Context, setting *entity.Setting) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, setting.Key, setting.Value, setting.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to set setting",
			zap.Error(err),
			zap.String("key", string(setting.Key)),
		)
		return fmt.Errorf("set setting %s: %w", setting.Key, err)
	}

	return nil
}
