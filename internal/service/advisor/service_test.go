package advisor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
)

var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type bookingRepoMock struct {
	hasAnyFn func(ctx context.Context, tenantID, memberID int64) (bool, error)
	listFn   func(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error)
}

func (m *bookingRepoMock) HasAnyByMember(ctx context.Context, tenantID, memberID int64) (bool, error) {
	return m.hasAnyFn(ctx, tenantID, memberID)
}

func (m *bookingRepoMock) ListByMember(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error) {
	return m.listFn(ctx, tenantID, memberID, since)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func booking(daysAgo int, slot domain.SlotID, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		TenantID:    7,
		MemberID:    42,
		BookingDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		SlotID:      slot,
		Status:      status,
	}
}

func newService(bookings []*domain.Booking) *advisor.Service {
	repo := &bookingRepoMock{
		hasAnyFn: func(ctx context.Context, tenantID, memberID int64) (bool, error) {
			return len(bookings) > 0, nil
		},
		listFn: func(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	return advisor.NewService(repo, &fixedTimeProvider{now: fixedNow}, time.UTC, &nopLogger{})
}

func TestHasEverBooked(t *testing.T) {
	has, err := newService([]*domain.Booking{booking(1, "18:00-19:00", domain.StatusCompleted)}).
		HasEverBooked(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = newService(nil).HasEverBooked(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLastSlot(t *testing.T) {
	// Список приходит от репозитория отсортированным по дате по убыванию
	s := newService([]*domain.Booking{
		booking(0, "20:00-21:00", domain.StatusConfirmed), // сегодня - не привычка
		booking(1, "19:00-20:00", domain.StatusCancelled), // отмена не считается
		booking(2, "18:00-19:00", domain.StatusCompleted),
		booking(5, "07:00-08:00", domain.StatusCompleted),
	})

	slot, err := s.LastSlot(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotID("18:00-19:00"), slot)
}

func TestLastSlot_NoHistory(t *testing.T) {
	s := newService([]*domain.Booking{
		booking(0, "20:00-21:00", domain.StatusConfirmed),
		booking(3, "19:00-20:00", domain.StatusNoShow),
	})

	_, err := s.LastSlot(context.Background(), 7, 42)
	assert.ErrorIs(t, err, advisor.ErrNoHistory)
}

func TestPattern_Histogram(t *testing.T) {
	s := newService([]*domain.Booking{
		booking(1, "18:00-19:00", domain.StatusCompleted),
		booking(3, "18:00-19:00", domain.StatusCompleted),
		booking(5, "18:00-19:00", domain.StatusConfirmed),
		booking(7, "07:00-08:00", domain.StatusCompleted),
		booking(9, "07:00-08:00", domain.StatusNoShow), // неявка не считается
		booking(0, "20:00-21:00", domain.StatusConfirmed), // сегодня не считается
	})

	pattern, err := s.Pattern(context.Background(), 7, 42, 30)
	require.NoError(t, err)

	assert.Equal(t, 4, pattern.TotalBookings)
	assert.Equal(t, 3, pattern.Histogram["18:00-19:00"])
	assert.Equal(t, 1, pattern.Histogram["07:00-08:00"])
	assert.Equal(t, domain.SlotID("18:00-19:00"), pattern.PreferredSlot)
	assert.InDelta(t, 4.0/30.0, pattern.BookingsPerDay, 1e-9)
}

func TestPattern_TieBreakPrefersEarlierSlot(t *testing.T) {
	s := newService([]*domain.Booking{
		booking(1, "19:00-20:00", domain.StatusCompleted),
		booking(2, "19:00-20:00", domain.StatusCompleted),
		booking(3, "07:00-08:00", domain.StatusCompleted),
		booking(4, "07:00-08:00", domain.StatusCompleted),
	})

	pattern, err := s.Pattern(context.Background(), 7, 42, 30)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotID("07:00-08:00"), pattern.PreferredSlot)
}

func TestPattern_NoHistory(t *testing.T) {
	_, err := newService(nil).Pattern(context.Background(), 7, 42, 30)
	assert.ErrorIs(t, err, advisor.ErrNoHistory)
}

func TestPattern_InvalidInput(t *testing.T) {
	_, err := newService(nil).Pattern(context.Background(), 0, 42, 30)
	assert.ErrorIs(t, err, advisor.ErrInvalidInput)
}
