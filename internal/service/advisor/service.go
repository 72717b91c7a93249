package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingPattern привычки участника за окно наблюдения
type BookingPattern struct {
	TotalBookings int

	// Histogram число активных броней по слотам за окно
	Histogram map[domain.SlotID]int

	// PreferredSlot самый частый слот участника
	// При равенстве частот выигрывает более ранний слот каталога
	PreferredSlot domain.SlotID

	// BookingsPerDay средняя частота посещений за окно
	BookingsPerDay float64
}

// Service подбор привычного слота для напоминаний и автоброни
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, timeProvider TimeProvider, location *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// HasEverBooked проверяет, бронировал ли участник хоть раз (любой статус)
func (s *Service) HasEverBooked(ctx context.Context, tenantID, memberID int64) (bool, error) {
	if tenantID <= 0 || memberID <= 0 {
		return false, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	has, err := s.bookingRepo.HasAnyByMember(ctx, tenantID, memberID)
	if err != nil {
		s.logger.Error("HasEverBooked: repository error for tenant=%d, member=%d: %v", tenantID, memberID, err)
		return false, fmt.Errorf("%w: HasEverBooked - repository error: %v", ErrInternal, err)
	}

	return has, nil
}

// LastSlot возвращает слот последней активной брони строго до сегодняшнего дня
// Сегодняшняя бронь не считается привычкой - она и есть результат напоминания
func (s *Service) LastSlot(ctx context.Context, tenantID, memberID int64) (domain.SlotID, error) {
	if tenantID <= 0 || memberID <= 0 {
		return "", fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByMember(ctx, tenantID, memberID, nil)
	if err != nil {
		s.logger.Error("LastSlot: repository error for tenant=%d, member=%d: %v", tenantID, memberID, err)
		return "", fmt.Errorf("%w: LastSlot - repository error: %v", ErrInternal, err)
	}

	today := domain.TruncateToDay(s.timeProvider.Now(), s.location)

	// Список отсортирован по дате по убыванию - первая подходящая бронь и есть последняя
	for _, b := range bookings {
		if b.IsActive() && b.BookingDate.Before(today) {
			return b.SlotID, nil
		}
	}

	return "", ErrNoHistory
}

// Pattern строит гистограмму посещений участника за окно в windowDays дней
// Учитываются только активные брони строго до сегодняшнего дня
func (s *Service) Pattern(ctx context.Context, tenantID, memberID int64, windowDays int) (*BookingPattern, error) {
	if tenantID <= 0 || memberID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and memberID must be positive", ErrInvalidInput)
	}
	if windowDays <= 0 {
		windowDays = domain.DefaultPatternWindowDays
	}

	today := domain.TruncateToDay(s.timeProvider.Now(), s.location)
	since := today.AddDate(0, 0, -windowDays)

	bookings, err := s.bookingRepo.ListByMember(ctx, tenantID, memberID, &since)
	if err != nil {
		s.logger.Error("Pattern: repository error for tenant=%d, member=%d: %v", tenantID, memberID, err)
		return nil, fmt.Errorf("%w: Pattern - repository error: %v", ErrInternal, err)
	}

	pattern := &BookingPattern{
		Histogram: make(map[domain.SlotID]int),
	}

	for _, b := range bookings {
		if !b.IsActive() || !b.BookingDate.Before(today) {
			continue
		}
		pattern.Histogram[b.SlotID]++
		pattern.TotalBookings++
	}

	if pattern.TotalBookings == 0 {
		return nil, ErrNoHistory
	}

	pattern.PreferredSlot = preferredSlot(pattern.Histogram)
	pattern.BookingsPerDay = float64(pattern.TotalBookings) / float64(windowDays)

	return pattern, nil
}

// preferredSlot выбирает самый частый слот, при равенстве - ранний по каталогу
func preferredSlot(histogram map[domain.SlotID]int) domain.SlotID {
	var best domain.SlotID
	bestCount := 0

	for _, slot := range domain.AllSlots() {
		if count := histogram[slot]; count > bestCount {
			best = slot
			bestCount = count
		}
	}

	return best
}
