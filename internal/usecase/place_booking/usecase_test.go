package place_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	storage "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	capacitystore "github.com/m04kA/GMS-BookingService/internal/infra/storage/capacity"
	"github.com/m04kA/GMS-BookingService/internal/integrations/memberservice"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type bookingRepoMock struct {
	upsertFn    func(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error)
	countFn     func(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error)
	incrementFn func(ctx context.Context, id int64) error
}

func (m *bookingRepoMock) Upsert(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
	return m.upsertFn(ctx, b)
}

func (m *bookingRepoMock) CountActiveBySlot(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
	return m.countFn(ctx, tenantID, date, slot)
}

func (m *bookingRepoMock) IncrementOverflowWarnings(ctx context.Context, id int64) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id)
	}
	return nil
}

type capacityRepoMock struct {
	getFn func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error)
}

func (m *capacityRepoMock) GetByTenant(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
	return m.getFn(ctx, tenantID)
}

type memberClientMock struct {
	getFn func(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error)
}

func (m *memberClientMock) GetMember(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error) {
	return m.getFn(ctx, tenantID, memberID)
}

type notifyClientMock struct {
	sentToOwner []string
}

func (m *notifyClientMock) SendToOwner(ctx context.Context, tenantID int64, message string) error {
	m.sentToOwner = append(m.sentToOwner, message)
	return nil
}

type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	bookingRepo  *bookingRepoMock
	capacityRepo *capacityRepoMock
	memberClient *memberClientMock
	notifyClient *notifyClientMock
	hardLimit    bool
}

func defaultFixture() *fixture {
	return &fixture{
		bookingRepo: &bookingRepoMock{
			upsertFn: func(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
				saved := *b
				saved.ID = 1
				saved.CreatedAt = fixedNow
				saved.UpdatedAt = fixedNow
				return &saved, false, nil
			},
			countFn: func(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
				return 5, nil
			},
		},
		capacityRepo: &capacityRepoMock{
			getFn: func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
				return &domain.CapacityConfig{TenantID: tenantID, DefaultCapacity: 20}, nil
			},
		},
		memberClient: &memberClientMock{
			getFn: func(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error) {
				return &memberservice.Member{
					ID:            memberID,
					TenantID:      tenantID,
					Name:          "Анна",
					PhoneNo:       "+79990001122",
					PaymentStatus: memberservice.PaymentStatusPaid,
				}, nil
			},
		},
		notifyClient: &notifyClientMock{},
	}
}

func (f *fixture) useCase() *placeBooking.UseCase {
	return placeBooking.NewUseCase(
		f.bookingRepo,
		f.capacityRepo,
		f.memberClient,
		f.notifyClient,
		&txManagerMock{},
		&fixedTimeProvider{now: fixedNow},
		time.UTC,
		f.hardLimit,
		&nopLogger{},
	)
}

func validRequest() *placeBooking.Request {
	return &placeBooking.Request{
		TenantID:         7,
		MemberID:         42,
		Date:             fixedNow,
		SlotID:           "18:00-19:00",
		Method:           domain.MethodSelfServiceLink,
		TokenFingerprint: ptr.Ptr("fp-1"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := defaultFixture()

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(7), resp.TenantID)
	assert.Equal(t, int64(42), resp.MemberID)
	assert.Equal(t, "Анна", resp.MemberName)
	assert.Equal(t, domain.SlotID("18:00-19:00"), resp.SlotID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.IsUpdate)
	assert.False(t, resp.Overflow)
	assert.Equal(t, domain.TierSafe, resp.CrowdLevel.Tier)
	assert.Empty(t, f.notifyClient.sentToOwner)
}

func TestExecute_RebookSameDay(t *testing.T) {
	f := defaultFixture()
	f.bookingRepo.upsertFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
		saved := *b
		saved.ID = 1
		return &saved, true, nil
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.IsUpdate)
}

func TestExecute_InvalidSlot(t *testing.T) {
	f := defaultFixture()

	req := validRequest()
	req.SlotID = "18:30-19:30"

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, placeBooking.ErrInvalidSlot)
}

func TestExecute_DateInPast(t *testing.T) {
	f := defaultFixture()

	req := validRequest()
	req.Date = fixedNow.AddDate(0, 0, -1)

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, placeBooking.ErrInvalidDate)
}

func TestExecute_SlotWindowEnded(t *testing.T) {
	f := defaultFixture()

	// В 10:00 слот 06:00-07:00 уже закончился
	req := validRequest()
	req.SlotID = "06:00-07:00"

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, placeBooking.ErrSlotInPast)
}

func TestExecute_OwnerBackfillsEndedSlot(t *testing.T) {
	f := defaultFixture()

	// Владелец дозаполняет прошедший слот дня (walk-in пришел в 06:30)
	req := validRequest()
	req.SlotID = "06:00-07:00"
	req.Method = domain.MethodWalkIn
	req.TokenFingerprint = nil

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.MethodWalkIn), resp.Method)
}

func TestExecute_PaymentPending(t *testing.T) {
	f := defaultFixture()
	f.memberClient.getFn = func(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error) {
		return &memberservice.Member{ID: memberID, Name: "Анна", PaymentStatus: memberservice.PaymentStatusPending}, nil
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, placeBooking.ErrPaymentPending)

	// Владелец может записать должника вручную
	req := validRequest()
	req.Method = domain.MethodOwnerManual
	req.TokenFingerprint = nil

	_, err = f.useCase().Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_MemberNotFound(t *testing.T) {
	f := defaultFixture()
	f.memberClient.getFn = func(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error) {
		return nil, memberservice.ErrMemberNotFound
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, placeBooking.ErrMemberNotFound)
}

func TestExecute_MemberServiceUnavailable(t *testing.T) {
	f := defaultFixture()
	f.memberClient.getFn = func(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error) {
		return nil, memberservice.ErrServiceUnavailable
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, placeBooking.ErrServiceUnavailable)
}

func TestExecute_TokenAlreadyUsed(t *testing.T) {
	f := defaultFixture()
	f.bookingRepo.upsertFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
		return nil, false, storage.ErrTokenAlreadyUsed
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, placeBooking.ErrTokenAlreadyUsed)
}

func TestExecute_SoftOverflow(t *testing.T) {
	f := defaultFixture()
	f.bookingRepo.countFn = func(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
		return 21, nil
	}

	incremented := false
	f.bookingRepo.incrementFn = func(ctx context.Context, id int64) error {
		incremented = true
		return nil
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Overflow)
	assert.Equal(t, 1, resp.OverflowCount)
	assert.Equal(t, domain.TierFull, resp.CrowdLevel.Tier)
	assert.True(t, incremented)
	require.Len(t, f.notifyClient.sentToOwner, 1)
	assert.Contains(t, f.notifyClient.sentToOwner[0], "18:00-19:00")
}

func TestExecute_HardLimitRejects(t *testing.T) {
	f := defaultFixture()
	f.hardLimit = true
	f.bookingRepo.countFn = func(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
		return 21, nil
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, placeBooking.ErrSlotFull)
	assert.Empty(t, f.notifyClient.sentToOwner)
}

func TestExecute_SlotOverrideApplies(t *testing.T) {
	f := defaultFixture()
	f.capacityRepo.getFn = func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
		return &domain.CapacityConfig{
			TenantID:         tenantID,
			DefaultCapacity:  20,
			PerSlotOverrides: map[domain.SlotID]int{"18:00-19:00": 5},
		}, nil
	}
	f.bookingRepo.countFn = func(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
		return 6, nil
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Overflow)
	assert.Equal(t, 1, resp.OverflowCount)
}

func TestExecute_MissingCapacityConfigUsesDefaults(t *testing.T) {
	f := defaultFixture()
	f.capacityRepo.getFn = func(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
		return nil, capacitystore.ErrConfigNotFound
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, resp.Overflow)
}
