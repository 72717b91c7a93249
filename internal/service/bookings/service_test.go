package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

var (
	fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	testDay  = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
)

type repoMock struct {
	getActiveFn    func(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error)
	listFn         func(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error)
	cancelFn       func(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error)
	updateStatusFn func(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus) (*domain.Booking, error)
}

func (m *repoMock) GetActive(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
	return m.getActiveFn(ctx, tenantID, memberID, date)
}

func (m *repoMock) ListByMember(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error) {
	return m.listFn(ctx, tenantID, memberID, since)
}

func (m *repoMock) Cancel(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error) {
	return m.cancelFn(ctx, tenantID, memberID, date, reason)
}

func (m *repoMock) UpdateStatus(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus) (*domain.Booking, error) {
	return m.updateStatusFn(ctx, tenantID, memberID, date, status)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func newService(repo *repoMock) *bookings.Service {
	return bookings.NewService(repo, &fixedTimeProvider{now: fixedNow}, time.UTC, &nopLogger{})
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		TenantID:    7,
		MemberID:    42,
		BookingDate: testDay,
		SlotID:      "18:00-19:00",
		Status:      domain.StatusConfirmed,
		Method:      domain.MethodSelfServiceLink,
		MemberName:  "Анна",
	}
}

func TestGetActive(t *testing.T) {
	repo := &repoMock{
		getActiveFn: func(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
			assert.Equal(t, testDay, date)
			return confirmedBooking(), nil
		},
	}

	resp, err := newService(repo).GetActive(context.Background(), 7, 42, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "18:00-19:00", resp.SlotID)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Equal(t, "19:00", resp.EndTime)
	assert.Equal(t, "2026-09-01", resp.BookingDate)
}

func TestGetActive_NotFound(t *testing.T) {
	repo := &repoMock{
		getActiveFn: func(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}

	_, err := newService(repo).GetActive(context.Background(), 7, 42, fixedNow)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo := &repoMock{
		cancelFn: func(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error) {
			b := confirmedBooking()
			b.Status = domain.StatusCancelled
			b.CancellationReason = &reason
			cancelledAt := fixedNow
			b.CancelledAt = &cancelledAt
			return b, nil
		},
	}

	resp, err := newService(repo).Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID:           7,
		MemberID:           42,
		Date:               fixedNow,
		CancellationReason: "заболел",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "заболел", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestCancel_NotFound(t *testing.T) {
	repo := &repoMock{
		cancelFn: func(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		getActiveFn: func(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}

	_, err := newService(repo).Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID: 7, MemberID: 42, Date: fixedNow,
	})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	repo := &repoMock{
		cancelFn: func(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		getActiveFn: func(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
			b := confirmedBooking()
			b.Status = domain.StatusCompleted
			return b, nil
		},
	}

	_, err := newService(repo).Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID: 7, MemberID: 42, Date: fixedNow,
	})
	assert.ErrorIs(t, err, bookings.ErrCannotTransition)
}

func TestUpdateStatus(t *testing.T) {
	repo := &repoMock{
		updateStatusFn: func(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus) (*domain.Booking, error) {
			assert.Equal(t, domain.StatusNoShow, status)
			b := confirmedBooking()
			b.Status = status
			return b, nil
		},
	}

	resp, err := newService(repo).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 7,
		MemberID: 42,
		Date:     fixedNow,
		Status:   "no_show",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	s := newService(&repoMock{})

	_, err := s.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 7, MemberID: 42, Date: fixedNow, Status: "vanished",
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidStatus)

	// confirmed не назначается вручную
	_, err = s.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 7, MemberID: 42, Date: fixedNow, Status: "confirmed",
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidStatus)
}

func TestMemberHistory(t *testing.T) {
	var gotSince *time.Time
	repo := &repoMock{
		listFn: func(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error) {
			gotSince = since
			return []*domain.Booking{confirmedBooking()}, nil
		},
	}

	windowDays := 30
	resp, err := newService(repo).MemberHistory(context.Background(), &models.MemberHistoryRequest{
		TenantID:   7,
		MemberID:   42,
		WindowDays: &windowDays,
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, gotSince)
	assert.Equal(t, testDay.AddDate(0, 0, -30), *gotSince)
}

func TestMemberHistory_InvalidInput(t *testing.T) {
	s := newService(&repoMock{})

	_, err := s.MemberHistory(context.Background(), &models.MemberHistoryRequest{TenantID: 0, MemberID: 42})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	bad := -1
	_, err = s.MemberHistory(context.Background(), &models.MemberHistoryRequest{
		TenantID: 7, MemberID: 42, WindowDays: &bad,
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}
