package get_slot_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	capacitystore "github.com/m04kA/GMS-BookingService/internal/infra/storage/capacity"
)

// UseCase расчет доступности всех слотов каталога на день
type UseCase struct {
	bookingRepo  BookingRepository
	capacityRepo CapacityRepository
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(bookingRepo BookingRepository, capacityRepo CapacityRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		capacityRepo: capacityRepo,
		location:     location,
		logger:       logger,
	}
}

// Execute возвращает состояние всех 16 слотов каталога на указанную дату
//
// Слоты всегда идут в порядке каталога, включая пустые. Занятость считается
// по активным броням (confirmed и completed), отмены и неявки место не держат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Брони хранятся с усеченной датой - запрос с "сырым" временем
	// (например, Now() из хендлера) обязан попадать в тот же день
	day := domain.TruncateToDay(req.Date, uc.location)

	capacityCfg, err := uc.capacityRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, capacitystore.ErrConfigNotFound) {
			capacityCfg = domain.DefaultCapacityConfig(req.TenantID)
		} else {
			uc.logger.Error("get_slot_availability: failed to load capacity config for tenant %d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: failed to load capacity config: %v", ErrInternal, err)
		}
	}

	if req.RequireFeatureEnabled && !capacityCfg.CrowdFeatureEnabled {
		return nil, fmt.Errorf("%w: tenant %d", ErrFeatureDisabled, req.TenantID)
	}

	bookings, err := uc.bookingRepo.ListActiveByDate(ctx, req.TenantID, day)
	if err != nil {
		uc.logger.Error("get_slot_availability: failed to list bookings for tenant %d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	counts := make(map[domain.SlotID]int, domain.SlotCount())
	membersBySlot := make(map[domain.SlotID][]domain.MemberRef)
	for _, b := range bookings {
		counts[b.SlotID]++
		if req.IncludeMembers {
			membersBySlot[b.SlotID] = append(membersBySlot[b.SlotID], domain.MemberRef{
				MemberID:   b.MemberID,
				MemberName: b.MemberName,
			})
		}
	}

	catalog := domain.AllSlots()
	slots := make([]SlotAvailability, 0, len(catalog))
	stats := DailyStatistics{
		TierCounts: make(map[domain.CrowdTier]int, 4),
	}
	var pctSum float64

	for _, slotID := range catalog {
		current := counts[slotID]
		capacity := capacityCfg.ResolveCapacity(slotID)
		pct := domain.OccupancyPercentage(current, capacity)
		level := domain.Classify(current, capacity)

		available := capacity - current
		if available < 0 {
			available = 0
		}

		slots = append(slots, SlotAvailability{
			SlotID:         slotID,
			StartTime:      slotID.StartTime(),
			EndTime:        slotID.EndTime(),
			CurrentCount:   current,
			MaxCapacity:    capacity,
			AvailableSpots: available,
			OccupancyPct:   pct,
			CrowdLevel:     level,
			IsRecommended:  domain.IsRecommended(current, capacity),
			Members:        membersBySlot[slotID],
		})

		stats.TotalBookings += current
		stats.TierCounts[level.Tier]++
		pctSum += pct
	}

	if len(catalog) > 0 {
		stats.AverageOccupancyPercentage = pctSum / float64(len(catalog))
	}

	return &Response{
		TenantID: req.TenantID,
		Date:     day,
		Slots:    slots,
		Stats:    stats,
	}, nil
}
