package place_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	storage "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	capacitystore "github.com/m04kA/GMS-BookingService/internal/infra/storage/capacity"
	"github.com/m04kA/GMS-BookingService/internal/integrations/memberservice"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

// UseCase система бронирования слота: атомарный book-or-rebook
type UseCase struct {
	bookingRepo  BookingRepository
	capacityRepo CapacityRepository
	memberClient MemberServiceClient
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	hardLimit    bool
	logger       Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	bookingRepo BookingRepository,
	capacityRepo CapacityRepository,
	memberClient MemberServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	location *time.Location,
	hardLimit bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		capacityRepo: capacityRepo,
		memberClient: memberClient,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: timeProvider,
		location:     location,
		hardLimit:    hardLimit,
		logger:       logger,
	}
}

// Execute создает или перебронирует слот для участника
//
// Если у участника уже есть активная бронь на эту дату, она атомарно
// переносится на новый слот (перебронирование, не вторая бронь).
// При мягком переполнении бронь создается, а владелец получает уведомление.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	bookingDate := domain.TruncateToDay(req.Date, uc.location)

	if err := validateDate(bookingDate, now); err != nil {
		return nil, err
	}

	if req.Method.IsMemberInitiated() {
		if err := validateSlotWindow(req.SlotID, bookingDate, now); err != nil {
			return nil, err
		}
	}

	member, err := uc.memberClient.GetMember(ctx, req.TenantID, req.MemberID)
	if err != nil {
		if errors.Is(err, memberservice.ErrMemberNotFound) {
			return nil, fmt.Errorf("%w: tenant %d, member %d", ErrMemberNotFound, req.TenantID, req.MemberID)
		}
		if errors.Is(err, memberservice.ErrServiceUnavailable) {
			uc.logger.Error("place_booking: member service unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	// Проверка оплаты действует только для путей, инициированных участником.
	// Владелец и стойка регистрации могут бронировать должнику вручную.
	if req.Method.IsMemberInitiated() && member.HasPendingPayment() {
		return nil, fmt.Errorf("%w: member %d", ErrPaymentPending, req.MemberID)
	}

	var memberPhone *string
	if member.PhoneNo != "" {
		memberPhone = ptr.Ptr(member.PhoneNo)
	}

	capacityCfg, err := uc.capacityRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, capacitystore.ErrConfigNotFound) {
			capacityCfg = domain.DefaultCapacityConfig(req.TenantID)
		} else {
			uc.logger.Error("place_booking: failed to load capacity config for tenant %d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: failed to load capacity config: %v", ErrInternal, err)
		}
	}
	maxCapacity := capacityCfg.ResolveCapacity(req.SlotID)

	booking := &domain.Booking{
		TenantID:            req.TenantID,
		MemberID:            req.MemberID,
		BookingDate:         bookingDate,
		SlotID:              req.SlotID,
		Status:              domain.StatusConfirmed,
		Method:              req.Method,
		TokenFingerprint:    req.TokenFingerprint,
		MemberName:          member.Name,
		MemberPhone:         memberPhone,
		CarriedFromPrevious: req.Method == domain.MethodCarriedFromPreviousSlot,
	}

	var (
		saved     *domain.Booking
		isUpdate  bool
		occupancy int
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error

		saved, isUpdate, txErr = uc.bookingRepo.Upsert(txCtx, booking)
		if txErr != nil {
			return txErr
		}

		occupancy, txErr = uc.bookingRepo.CountActiveBySlot(txCtx, req.TenantID, bookingDate, req.SlotID)
		if txErr != nil {
			return txErr
		}

		if uc.hardLimit && occupancy > maxCapacity {
			return fmt.Errorf("%w: slot %s has %d/%d", ErrSlotFull, req.SlotID, occupancy, maxCapacity)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotFull) {
			return nil, err
		}
		if errors.Is(err, storage.ErrTokenAlreadyUsed) {
			return nil, fmt.Errorf("%w: fingerprint reuse for member %d", ErrTokenAlreadyUsed, req.MemberID)
		}
		uc.logger.Error("place_booking: transaction failed for tenant %d, member %d: %v", req.TenantID, req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to place booking: %v", ErrInternal, err)
	}

	overflow := occupancy > maxCapacity
	overflowCount := 0
	if overflow {
		overflowCount = occupancy - maxCapacity
		uc.handleOverflow(ctx, saved, occupancy, maxCapacity)
	}

	uc.logger.Info(
		"place_booking: booking %d placed (tenant=%d, member=%d, date=%s, slot=%s, method=%s, update=%t, overflow=%t)",
		saved.ID, saved.TenantID, saved.MemberID, bookingDate.Format(domain.DateFormat), saved.SlotID, saved.Method, isUpdate, overflow,
	)

	return &Response{
		ID:            saved.ID,
		TenantID:      saved.TenantID,
		MemberID:      saved.MemberID,
		MemberName:    saved.MemberName,
		BookingDate:   saved.BookingDate,
		SlotID:        saved.SlotID,
		Status:        string(saved.Status),
		Method:        string(saved.Method),
		IsUpdate:      isUpdate,
		Overflow:      overflow,
		OverflowCount: overflowCount,
		CrowdLevel:    domain.Classify(occupancy, maxCapacity),
		CreatedAt:     saved.CreatedAt,
		UpdatedAt:     saved.UpdatedAt,
	}, nil
}

// handleOverflow помечает бронь переполненной и уведомляет владельца
// Обе операции best-effort: бронь уже создана и не откатывается
func (uc *UseCase) handleOverflow(ctx context.Context, booking *domain.Booking, occupancy, maxCapacity int) {
	if err := uc.bookingRepo.IncrementOverflowWarnings(ctx, booking.ID); err != nil {
		uc.logger.Warn("place_booking: failed to mark overflow for booking %d: %v", booking.ID, err)
	}

	message := fmt.Sprintf(
		"Слот %s на %s переполнен: %d записей при вместимости %d",
		booking.SlotID, booking.BookingDate.Format(domain.DateFormat), occupancy, maxCapacity,
	)
	if err := uc.notifyClient.SendToOwner(ctx, booking.TenantID, message); err != nil {
		uc.logger.Warn("place_booking: failed to notify owner of tenant %d: %v", booking.TenantID, err)
	}
}
