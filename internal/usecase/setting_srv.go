package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type SettingService interface {
	GetPublic(ctx context.Context) (*response.PublicSettingsResponse, error)
	GetAll(ctx context.Context) (*response.SettingsResponse, error)
	Update(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error)
	NotificationEmails(ctx context.Context) ([]string, error)
}

type settingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSettingService(repo *repository.Repository, log *zap.Logger) SettingService {
	return &settingService{
		repo: repo,
		log:  log.With(zap.String("service", "setting")),
	}
}

func (s *settingService) values(ctx context.Context) (map[entity.SettingKey]string, error) {
	settings, err := s.repo.Setting.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	values := make(map[entity.SettingKey]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

func (s *settingService) GetPublic(ctx context.Context) (*response.PublicSettingsResponse, error) {
	values, err := s.values(ctx)
	if err != nil {
		return nil, err
	}

	greeting := values[entity.SettingGreetingText]
	html, err := utils.RenderMarkdown(greeting)
	if err != nil {
		s.log.Warn("Failed to render greeting", zap.Error(err))
	}

	return &response.PublicSettingsResponse{
		GreetingText:  greeting,
		GreetingHTML:  html,
		GreetingImage: values[entity.SettingGreetingImage],
		HeroImage:     values[entity.SettingHeroImage],
	}, nil
}

func (s *settingService) GetAll(ctx context.Context) (*response.SettingsResponse, error) {
	values, err := s.values(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(values))
	for key, value := range values {
		out[string(key)] = value
	}
	return &response.SettingsResponse{Settings: out}, nil
}

// Update writes every given key. Unknown keys or a malformed notification
// list reject the whole request before anything is stored.
func (s *settingService) Update(ctx context.Context, req *request.UpdateSettingsRequest) (*response.SettingsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	errs := make(map[string]string)
	for key, value := range req.Settings {
		settingKey := entity.SettingKey(key)
		if !settingKey.Valid() {
			errs[key] = "unknown setting"
			continue
		}
		if settingKey == entity.SettingNotificationEmails {
			for _, email := range entity.SplitEmails(value) {
				if _, err := mail.ParseAddress(email); err != nil {
					errs[key] = fmt.Sprintf("invalid email %q", email)
					break
				}
			}
		}
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	now := time.Now()
	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		for key, value := range req.Settings {
			setting := &entity.Setting{
				Key:       entity.SettingKey(key),
				Value:     strings.TrimSpace(value),
				UpdatedAt: now,
			}
			if err := s.repo.Setting.Set(ctx, setting); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Settings updated", zap.Int("count", len(req.Settings)))
	return s.GetAll(ctx)
}

func (s *settingService) NotificationEmails(ctx context.Context) ([]string, error) {
	setting, err := s.repo.Setting.Get(ctx, entity.SettingNotificationEmails)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return entity.SplitEmails(setting.Value), nil
}
