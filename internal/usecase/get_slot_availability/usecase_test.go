package get_slot_availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	capacitystore "github.com/m04kA/GMS-BookingService/internal/infra/storage/capacity"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

type bookingRepoMock struct {
	listFn func(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error)
}

func (m *bookingRepoMock) ListActiveByDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
	return m.listFn(ctx, tenantID, date)
}

type capacityRepoMock struct {
	getFn func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error)
}

func (m *capacityRepoMock) GetByTenant(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
	return m.getFn(ctx, tenantID)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func activeBooking(memberID int64, slot domain.SlotID) *domain.Booking {
	return &domain.Booking{
		TenantID:    7,
		MemberID:    memberID,
		BookingDate: testDate,
		SlotID:      slot,
		Status:      domain.StatusConfirmed,
		MemberName:  "Участник",
	}
}

func newUseCase(bookings []*domain.Booking, cfg *domain.CapacityConfig) *getSlotAvailability.UseCase {
	return getSlotAvailability.NewUseCase(
		&bookingRepoMock{
			listFn: func(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
				return bookings, nil
			},
		},
		&capacityRepoMock{
			getFn: func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
				if cfg == nil {
					return nil, capacitystore.ErrConfigNotFound
				}
				return cfg, nil
			},
		},
		time.UTC,
		&nopLogger{},
	)
}

func TestExecute_AllSlotsInCatalogOrder(t *testing.T) {
	uc := newUseCase(nil, &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20})

	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, domain.SlotCount())
	for i, slot := range domain.AllSlots() {
		assert.Equal(t, slot, resp.Slots[i].SlotID)
		assert.Equal(t, 0, resp.Slots[i].CurrentCount)
		assert.Equal(t, 20, resp.Slots[i].MaxCapacity)
		assert.Equal(t, 20, resp.Slots[i].AvailableSpots)
		assert.Equal(t, domain.TierSafe, resp.Slots[i].CrowdLevel.Tier)
		assert.True(t, resp.Slots[i].IsRecommended)
	}

	assert.Equal(t, 0, resp.Stats.TotalBookings)
	assert.Equal(t, domain.SlotCount(), resp.Stats.TierCounts[domain.TierSafe])
	assert.Equal(t, 0.0, resp.Stats.AverageOccupancyPercentage)
}

func TestExecute_CountsAndClassifies(t *testing.T) {
	var bookings []*domain.Booking
	// 19 из 20 в вечернем слоте - FULL
	for i := int64(1); i <= 19; i++ {
		bookings = append(bookings, activeBooking(i, "18:00-19:00"))
	}
	// 14 из 20 утром - ALMOST_FULL
	for i := int64(100); i < 114; i++ {
		bookings = append(bookings, activeBooking(i, "07:00-08:00"))
	}

	uc := newUseCase(bookings, &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20})

	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	require.NoError(t, err)

	evening := resp.Slots[domain.SlotIndex("18:00-19:00")]
	assert.Equal(t, 19, evening.CurrentCount)
	assert.Equal(t, 1, evening.AvailableSpots)
	assert.Equal(t, domain.TierFull, evening.CrowdLevel.Tier)
	assert.False(t, evening.IsRecommended)

	morning := resp.Slots[domain.SlotIndex("07:00-08:00")]
	assert.Equal(t, 14, morning.CurrentCount)
	assert.Equal(t, domain.TierAlmostFull, morning.CrowdLevel.Tier)

	assert.Equal(t, 33, resp.Stats.TotalBookings)
	assert.Equal(t, 1, resp.Stats.TierCounts[domain.TierFull])
	assert.Equal(t, 1, resp.Stats.TierCounts[domain.TierAlmostFull])
	assert.Equal(t, domain.SlotCount()-2, resp.Stats.TierCounts[domain.TierSafe])
	assert.Greater(t, resp.Stats.AverageOccupancyPercentage, 0.0)
}

func TestExecute_OverbookedSlotHasZeroAvailable(t *testing.T) {
	var bookings []*domain.Booking
	for i := int64(1); i <= 23; i++ {
		bookings = append(bookings, activeBooking(i, "18:00-19:00"))
	}

	uc := newUseCase(bookings, &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20})

	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	require.NoError(t, err)

	slot := resp.Slots[domain.SlotIndex("18:00-19:00")]
	assert.Equal(t, 23, slot.CurrentCount)
	assert.Equal(t, 0, slot.AvailableSpots)
	assert.Equal(t, domain.TierFull, slot.CrowdLevel.Tier)
}

func TestExecute_FeatureGate(t *testing.T) {
	uc := newUseCase(nil, &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20, CrowdFeatureEnabled: false})

	_, err := uc.Execute(context.Background(), &getSlotAvailability.Request{
		TenantID:              7,
		Date:                  testDate,
		RequireFeatureEnabled: true,
	})
	assert.ErrorIs(t, err, getSlotAvailability.ErrFeatureDisabled)

	// Без требования фичи запрос проходит
	_, err = uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	assert.NoError(t, err)
}

func TestExecute_WallClockDateStillCountsBookings(t *testing.T) {
	// Дата по умолчанию в хендлерах - Now() с временем суток, а брони
	// хранятся усеченными к началу дня. Репозиторий должен получить день
	stored := activeBooking(1, "18:00-19:00")
	uc := getSlotAvailability.NewUseCase(
		&bookingRepoMock{
			listFn: func(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
				if !date.Equal(testDate) {
					return nil, nil
				}
				return []*domain.Booking{stored}, nil
			},
		},
		&capacityRepoMock{
			getFn: func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
				return &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20}, nil
			},
		},
		time.UTC,
		&nopLogger{},
	)

	wallClock := testDate.Add(14*time.Hour + 23*time.Minute)
	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: wallClock})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Stats.TotalBookings)
	assert.Equal(t, 1, resp.Slots[domain.SlotIndex("18:00-19:00")].CurrentCount)
	assert.Equal(t, testDate, resp.Date)
}

func TestExecute_MissingConfigUsesDefaults(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotCapacity, resp.Slots[0].MaxCapacity)
}

func TestExecute_IncludeMembers(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(1, "18:00-19:00"),
		activeBooking(2, "18:00-19:00"),
	}

	uc := newUseCase(bookings, &domain.CapacityConfig{TenantID: 7, DefaultCapacity: 20})

	resp, err := uc.Execute(context.Background(), &getSlotAvailability.Request{
		TenantID:       7,
		Date:           testDate,
		IncludeMembers: true,
	})
	require.NoError(t, err)

	slot := resp.Slots[domain.SlotIndex("18:00-19:00")]
	require.Len(t, slot.Members, 2)
	assert.Equal(t, int64(1), slot.Members[0].MemberID)

	// Без IncludeMembers списки участников не заполняются
	resp, err = uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots[domain.SlotIndex("18:00-19:00")].Members)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 0, Date: testDate})
	assert.ErrorIs(t, err, getSlotAvailability.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &getSlotAvailability.Request{TenantID: 7})
	assert.ErrorIs(t, err, getSlotAvailability.ErrInvalidInput)
}
