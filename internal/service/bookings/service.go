package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронями
// Создание и перебронирование живут в usecase place_booking, здесь - чтение,
// отмена и смена статуса владельцем
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// GetActive получает активную бронь участника на дату
func (s *Service) GetActive(ctx context.Context, tenantID, memberID int64, date time.Time) (*models.BookingResponse, error) {
	if tenantID <= 0 || memberID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	day := domain.TruncateToDay(date, s.location)

	booking, err := s.bookingRepo.GetActive(ctx, tenantID, memberID, day)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetActive: repository error for tenant=%d, member=%d: %v", tenantID, memberID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет активную бронь участника
// Отмена освобождает место в слоте, бронь остается в истории
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if req.TenantID <= 0 || req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	day := domain.TruncateToDay(req.Date, s.location)
	s.logger.Info("Cancel: cancelling booking for tenant=%d, member=%d, date=%s", req.TenantID, req.MemberID, day.Format(domain.DateFormat))

	booking, err := s.bookingRepo.Cancel(ctx, req.TenantID, req.MemberID, day, req.CancellationReason)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, s.resolveTransitionFailure(ctx, req.TenantID, req.MemberID, day)
		}
		s.logger.Error("Cancel: repository error for tenant=%d, member=%d: %v", req.TenantID, req.MemberID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит подтвержденную бронь в no_show или completed
// Используется владельцем при отметке посещений
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if req.TenantID <= 0 || req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for member=%d", req.Status, req.MemberID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Целевой статус может быть только терминальным, confirmed не назначается
	if status == domain.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot transition to %s", ErrInvalidStatus, status)
	}

	day := domain.TruncateToDay(req.Date, s.location)

	booking, err := s.bookingRepo.UpdateStatus(ctx, req.TenantID, req.MemberID, day, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, s.resolveTransitionFailure(ctx, req.TenantID, req.MemberID, day)
		}
		s.logger.Error("UpdateStatus: repository error for tenant=%d, member=%d: %v", req.TenantID, req.MemberID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", booking.ID, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// MemberHistory получает историю бронирований участника, новые сверху
func (s *Service) MemberHistory(ctx context.Context, req *models.MemberHistoryRequest) (*models.BookingListResponse, error) {
	if req.TenantID <= 0 || req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	var since *time.Time
	if req.WindowDays != nil {
		if *req.WindowDays <= 0 {
			return nil, fmt.Errorf("%w: windowDays must be positive", ErrInvalidInput)
		}
		now := s.timeProvider.Now().In(s.location)
		from := domain.TruncateToDay(now.AddDate(0, 0, -*req.WindowDays), s.location)
		since = &from
	}

	bookings, err := s.bookingRepo.ListByMember(ctx, req.TenantID, req.MemberID, since)
	if err != nil {
		s.logger.Error("MemberHistory: repository error for tenant=%d, member=%d: %v", req.TenantID, req.MemberID, err)
		return nil, fmt.Errorf("%w: MemberHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// resolveTransitionFailure различает "брони нет" и "бронь уже в терминальном статусе"
// Переход выполняется атомарно с условием status='confirmed', поэтому оба случая
// выглядят одинаково на уровне хранилища
func (s *Service) resolveTransitionFailure(ctx context.Context, tenantID, memberID int64, day time.Time) error {
	existing, err := s.bookingRepo.GetActive(ctx, tenantID, memberID, day)
	if err == nil && existing.Status != domain.StatusConfirmed {
		return fmt.Errorf("%w: booking id=%d has status %s", ErrCannotTransition, existing.ID, existing.Status)
	}
	return ErrBookingNotFound
}
