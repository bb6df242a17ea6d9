package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
)

// Service сервис для работы с настройками календаря
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки календаря тенанта.
// Если тенант настройки еще не сохранял, возвращаются значения по умолчанию
// без создания строки: чтение никогда не пишет.
func (s *Service) Get(ctx context.Context, tenantID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for tenant=%d", tenantID)

	tenantSettings, err := s.settingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no settings for tenant=%d, returning defaults", tenantID)
			return models.FromDomainSettings(domain.DefaultCalendarSettings(tenantID)), nil
		}
		s.logger.Error("Get: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for tenant=%d", tenantID)
	return models.FromDomainSettings(tenantSettings), nil
}

// Update обновляет настройки календаря тенанта.
// Поддерживает частичное обновление: неуказанные поля сохраняют текущие
// значения, при первом обновлении - значения по умолчанию.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for tenant=%d", req.TenantID)

	// 1. Загружаем текущие настройки либо берем значения по умолчанию
	exists := true
	tenantSettings, err := s.settingsRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		exists = false
		tenantSettings = domain.DefaultCalendarSettings(req.TenantID)
	}

	// 2. Применяем изменения и валидируем результат
	req.ApplyToSettings(tenantSettings)

	if err := s.validateSettings(tenantSettings); err != nil {
		s.logger.Warn("Update: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	// 3. Сохраняем: обновляем строку либо создаем при первом обращении
	var saved *domain.CalendarSettings
	if exists {
		saved, err = s.settingsRepo.Update(ctx, tenantSettings)
	} else {
		saved, err = s.settingsRepo.Create(ctx, tenantSettings)
		// Параллельное первое обновление могло успеть создать строку
		if errors.Is(err, settingsRepo.ErrSettingsAlreadyExist) {
			saved, err = s.settingsRepo.Update(ctx, tenantSettings)
		}
	}
	if err != nil {
		s.logger.Error("Update: failed to save settings for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Update - save settings: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved settings for tenant=%d", req.TenantID)
	return models.FromDomainSettings(saved), nil
}

// validateSettings валидирует рабочие часы и порог уверенности
func (s *Service) validateSettings(tenantSettings *domain.CalendarSettings) error {
	if err := tenantSettings.BusinessHoursStart.Validate(); err != nil {
		return fmt.Errorf("%w: businessHoursStart must be in HH:MM format", ErrInvalidInput)
	}
	if err := tenantSettings.BusinessHoursEnd.Validate(); err != nil {
		return fmt.Errorf("%w: businessHoursEnd must be in HH:MM format", ErrInvalidInput)
	}

	startMinutes, _ := tenantSettings.BusinessHoursStart.MinutesFromMidnight()
	endMinutes, _ := tenantSettings.BusinessHoursEnd.MinutesFromMidnight()
	if startMinutes >= endMinutes {
		return fmt.Errorf("%w: businessHoursStart must be before businessHoursEnd", ErrInvalidInput)
	}

	if tenantSettings.AIConfidenceThreshold < 0 || tenantSettings.AIConfidenceThreshold > 1 {
		return fmt.Errorf("%w: aiConfidenceThreshold must be between 0 and 1", ErrInvalidInput)
	}

	return nil
}
