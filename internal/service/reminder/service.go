package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	"github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

// Config настройки ежедневной рассылки напоминаний
type Config struct {
	// Hour час локального времени, в который запускается рассылка (0-23)
	Hour int

	// WindowDays окно анализа привычек участника
	WindowDays int

	// AutoBook автоматически бронировать привычный слот перед отправкой ссылки
	AutoBook bool

	// LinkBase база публичной ссылки бронирования, токен добавляется параметром
	LinkBase string
}

// Service ежедневная рассылка напоминаний о бронировании
// Для каждого участника без активной брони на сегодня подбирает привычный слот,
// опционально автобронирует его и отправляет персональную ссылку
type Service struct {
	bookingRepo  BookingRepository
	advisor      PatternAdvisor
	placer       BookingPlacer
	tokenIssuer  TokenIssuer
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	location     *time.Location
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса напоминаний
func NewService(
	bookingRepo BookingRepository,
	patternAdvisor PatternAdvisor,
	placer BookingPlacer,
	tokenIssuer TokenIssuer,
	notifyClient NotifyServiceClient,
	timeProvider TimeProvider,
	location *time.Location,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = domain.DefaultPatternWindowDays
	}
	return &Service{
		bookingRepo:  bookingRepo,
		advisor:      patternAdvisor,
		placer:       placer,
		tokenIssuer:  tokenIssuer,
		notifyClient: notifyClient,
		timeProvider: timeProvider,
		location:     location,
		cfg:          cfg,
		logger:       logger,
	}
}

// Run запускает цикл рассылки: раз в сутки в cfg.Hour по локальному времени зала
// Блокируется до отмены контекста, ошибки отдельных прогонов не фатальны
func (s *Service) Run(ctx context.Context) {
	for {
		next := s.nextRunAt()
		s.logger.Info("reminder: next sweep scheduled at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("reminder: stopping")
			return
		case <-timer.C:
		}

		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("reminder: sweep failed: %v", err)
		}
	}
}

// Sweep выполняет один прогон рассылки по всем залам
func (s *Service) Sweep(ctx context.Context) error {
	now := s.timeProvider.Now().In(s.location)
	today := domain.TruncateToDay(now, s.location)

	tenantIDs, err := s.bookingRepo.ListTenantIDs(ctx)
	if err != nil {
		return fmt.Errorf("reminder: failed to list tenants: %w", err)
	}

	var notified, autoBooked int
	for _, tenantID := range tenantIDs {
		n, a := s.sweepTenant(ctx, tenantID, today, now)
		notified += n
		autoBooked += a
	}

	s.logger.Info("reminder: sweep done for %s (tenants=%d, notified=%d, autoBooked=%d)",
		today.Format(domain.DateFormat), len(tenantIDs), notified, autoBooked)
	return nil
}

// sweepTenant обрабатывает один зал; все ошибки участников локальны
func (s *Service) sweepTenant(ctx context.Context, tenantID int64, today, now time.Time) (notified, autoBooked int) {
	members, err := s.bookingRepo.ListMembersWithoutActiveBooking(ctx, tenantID, today)
	if err != nil {
		s.logger.Error("reminder: failed to list members for tenant %d: %v", tenantID, err)
		return 0, 0
	}

	for _, member := range members {
		pattern, err := s.advisor.Pattern(ctx, tenantID, member.MemberID, s.cfg.WindowDays)
		if err != nil {
			if !errors.Is(err, advisor.ErrNoHistory) {
				s.logger.Error("reminder: pattern failed for tenant %d, member %d: %v", tenantID, member.MemberID, err)
			}
			continue
		}

		booked := false
		if s.cfg.AutoBook {
			booked = s.autoBook(ctx, tenantID, member, pattern.PreferredSlot, today)
			if booked {
				autoBooked++
			}
		}

		if s.notifyMember(ctx, tenantID, member, pattern.PreferredSlot, today, now, booked) {
			notified++
		}
	}

	return notified, autoBooked
}

// autoBook бронирует привычный слот участника методом carried_from_previous_slot
// Неудача не мешает отправке напоминания: участник выберет слот сам
func (s *Service) autoBook(ctx context.Context, tenantID int64, member domain.MemberRef, slot domain.SlotID, today time.Time) bool {
	_, err := s.placer.Execute(ctx, &place_booking.Request{
		TenantID: tenantID,
		MemberID: member.MemberID,
		Date:     today,
		SlotID:   slot,
		Method:   domain.MethodCarriedFromPreviousSlot,
	})
	if err != nil {
		s.logger.Warn("reminder: auto-book failed for tenant %d, member %d, slot %s: %v", tenantID, member.MemberID, slot, err)
		return false
	}
	return true
}

func (s *Service) notifyMember(ctx context.Context, tenantID int64, member domain.MemberRef, slot domain.SlotID, today, now time.Time, booked bool) bool {
	tokenString, err := s.tokenIssuer.Issue(tenantID, member.MemberID, member.MemberName, today, now)
	if err != nil {
		s.logger.Error("reminder: failed to issue token for tenant %d, member %d: %v", tenantID, member.MemberID, err)
		return false
	}

	link := fmt.Sprintf("%s?token=%s", s.cfg.LinkBase, tokenString)

	var message string
	if booked {
		message = fmt.Sprintf("Мы записали вас на привычный слот %s. Перенести или отменить: %s", slot, link)
	} else {
		message = fmt.Sprintf("Вы ещё не записались на сегодня. Ваш привычный слот %s. Записаться: %s", slot, link)
	}

	if err := s.notifyClient.SendToMember(ctx, tenantID, member.MemberID, message); err != nil {
		s.logger.Warn("reminder: failed to notify tenant %d, member %d: %v", tenantID, member.MemberID, err)
		return false
	}
	return true
}

// nextRunAt считает ближайший момент запуска в cfg.Hour локального времени
func (s *Service) nextRunAt() time.Time {
	now := s.timeProvider.Now().In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.Hour, 0, 0, 0, s.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
