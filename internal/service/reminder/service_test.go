package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	"github.com/m04kA/GMS-BookingService/internal/service/reminder"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

var fixedNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

type bookingRepoMock struct {
	tenantsFn func(ctx context.Context) ([]int64, error)
	membersFn func(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error)
}

func (m *bookingRepoMock) ListTenantIDs(ctx context.Context) ([]int64, error) {
	return m.tenantsFn(ctx)
}

func (m *bookingRepoMock) ListMembersWithoutActiveBooking(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error) {
	return m.membersFn(ctx, tenantID, date)
}

type advisorMock struct {
	patternFn func(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error)
}

func (m *advisorMock) Pattern(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error) {
	return m.patternFn(ctx, tenantID, memberID, windowDays)
}

type placerMock struct {
	requests []*placeBooking.Request
	err      error
}

func (m *placerMock) Execute(ctx context.Context, req *placeBooking.Request) (*placeBooking.Response, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &placeBooking.Response{ID: 1, SlotID: req.SlotID}, nil
}

type issuerMock struct{}

func (m *issuerMock) Issue(tenantID, memberID int64, memberName string, date time.Time, now time.Time) (string, error) {
	return "signed-token", nil
}

type notifyMock struct {
	messages []string
}

func (m *notifyMock) SendToMember(ctx context.Context, tenantID, memberID int64, message string) error {
	m.messages = append(m.messages, message)
	return nil
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func habitualPattern() *advisor.BookingPattern {
	return &advisor.BookingPattern{
		TotalBookings:  5,
		Histogram:      map[domain.SlotID]int{"18:00-19:00": 5},
		PreferredSlot:  "18:00-19:00",
		BookingsPerDay: 5.0 / 30.0,
	}
}

func TestSweep_SendsReminders(t *testing.T) {
	repo := &bookingRepoMock{
		tenantsFn: func(ctx context.Context) ([]int64, error) { return []int64{7}, nil },
		membersFn: func(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error) {
			return []domain.MemberRef{
				{MemberID: 42, MemberName: "Анна"},
				{MemberID: 43, MemberName: "Борис"},
			}, nil
		},
	}
	adv := &advisorMock{
		patternFn: func(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error) {
			if memberID == 43 {
				return nil, advisor.ErrNoHistory
			}
			return habitualPattern(), nil
		},
	}
	placer := &placerMock{}
	notify := &notifyMock{}

	svc := reminder.NewService(repo, adv, placer, &issuerMock{}, notify,
		&fixedTimeProvider{now: fixedNow}, time.UTC,
		reminder.Config{Hour: 9, WindowDays: 30, LinkBase: "https://gym.test/slots/book"},
		&nopLogger{})

	err := svc.Sweep(context.Background())
	require.NoError(t, err)

	// Участник без истории пропускается, автобронь выключена
	assert.Empty(t, placer.requests)
	require.Len(t, notify.messages, 1)
	assert.Contains(t, notify.messages[0], "18:00-19:00")
	assert.Contains(t, notify.messages[0], "token=signed-token")
}

func TestSweep_AutoBook(t *testing.T) {
	repo := &bookingRepoMock{
		tenantsFn: func(ctx context.Context) ([]int64, error) { return []int64{7}, nil },
		membersFn: func(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error) {
			return []domain.MemberRef{{MemberID: 42, MemberName: "Анна"}}, nil
		},
	}
	adv := &advisorMock{
		patternFn: func(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error) {
			return habitualPattern(), nil
		},
	}
	placer := &placerMock{}
	notify := &notifyMock{}

	svc := reminder.NewService(repo, adv, placer, &issuerMock{}, notify,
		&fixedTimeProvider{now: fixedNow}, time.UTC,
		reminder.Config{Hour: 9, WindowDays: 30, AutoBook: true, LinkBase: "https://gym.test/slots/book"},
		&nopLogger{})

	err := svc.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, placer.requests, 1)
	req := placer.requests[0]
	assert.Equal(t, int64(7), req.TenantID)
	assert.Equal(t, int64(42), req.MemberID)
	assert.Equal(t, domain.SlotID("18:00-19:00"), req.SlotID)
	assert.Equal(t, domain.MethodCarriedFromPreviousSlot, req.Method)

	require.Len(t, notify.messages, 1)
	assert.Contains(t, notify.messages[0], "Мы записали вас")
}

func TestSweep_AutoBookFailureStillNotifies(t *testing.T) {
	repo := &bookingRepoMock{
		tenantsFn: func(ctx context.Context) ([]int64, error) { return []int64{7}, nil },
		membersFn: func(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error) {
			return []domain.MemberRef{{MemberID: 42, MemberName: "Анна"}}, nil
		},
	}
	adv := &advisorMock{
		patternFn: func(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error) {
			return habitualPattern(), nil
		},
	}
	placer := &placerMock{err: placeBooking.ErrSlotInPast}
	notify := &notifyMock{}

	svc := reminder.NewService(repo, adv, placer, &issuerMock{}, notify,
		&fixedTimeProvider{now: fixedNow}, time.UTC,
		reminder.Config{Hour: 9, WindowDays: 30, AutoBook: true, LinkBase: "https://gym.test/slots/book"},
		&nopLogger{})

	err := svc.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, notify.messages, 1)
	assert.Contains(t, notify.messages[0], "Вы ещё не записались")
}
