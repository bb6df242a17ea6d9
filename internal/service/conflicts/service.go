package conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	conflictRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts/models"
)

// Кто разрешил конфликт, если вызывающая сторона не указала
const defaultResolvedBy = "manual"

// Service сервис для работы с журналом конфликтов
type Service struct {
	conflictRepo ConflictRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса журнала конфликтов
func NewService(conflictRepo ConflictRepository, logger Logger) *Service {
	return &Service{
		conflictRepo: conflictRepo,
		logger:       logger,
	}
}

// List получает журнал конфликтов тенанта с фильтрацией по статусу
// разрешения, бронированию и типу конфликта
func (s *Service) List(ctx context.Context, req *models.ListConflictsRequest) (*models.ConflictListResponse, error) {
	s.logger.Info("List: fetching conflicts for tenant=%d, status=%v", req.TenantID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records, err := s.conflictRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d conflicts for tenant=%d", len(records), req.TenantID)
	return models.FromDomainConflictList(records), nil
}

// Resolve помечает конфликт разрешенным и проставляет момент разрешения.
// Чужой или несуществующий конфликт неотличимы: в обоих случаях not found.
func (s *Service) Resolve(ctx context.Context, req *models.ResolveConflictRequest) (*models.ConflictResponse, error) {
	s.logger.Info("Resolve: resolving conflict id=%d for tenant=%d", req.ConflictID, req.TenantID)

	resolvedBy := req.ResolvedBy
	if resolvedBy == "" {
		resolvedBy = defaultResolvedBy
	}

	if len(req.ResolutionNotes) > domain.MaxResolutionNotesLength {
		s.logger.Warn("Resolve: resolution notes too long for conflict id=%d", req.ConflictID)
		return nil, fmt.Errorf("%w: resolution notes too long", ErrInvalidInput)
	}
	if len(resolvedBy) > domain.MaxResolvedByLength {
		s.logger.Warn("Resolve: resolved_by too long for conflict id=%d", req.ConflictID)
		return nil, fmt.Errorf("%w: resolved_by too long", ErrInvalidInput)
	}

	err := s.conflictRepo.UpdateResolution(ctx, req.TenantID, req.ConflictID, domain.ResolutionResolved, req.ResolutionNotes, resolvedBy)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			s.logger.Warn("Resolve: conflict id=%d not found for tenant=%d", req.ConflictID, req.TenantID)
			return nil, ErrConflictNotFound
		}
		s.logger.Error("Resolve: repository error for conflict id=%d: %v", req.ConflictID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	record, err := s.conflictRepo.GetByID(ctx, req.TenantID, req.ConflictID)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			return nil, ErrConflictNotFound
		}
		s.logger.Error("Resolve: failed to reload conflict id=%d: %v", req.ConflictID, err)
		return nil, fmt.Errorf("%w: Resolve - reload conflict: %v", ErrInternal, err)
	}

	s.logger.Info("Resolve: successfully resolved conflict id=%d by %s", req.ConflictID, resolvedBy)
	return models.FromDomainConflict(record), nil
}
