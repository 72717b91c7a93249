package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

const (
	// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	pgUniqueViolation = "23505"

	// tokenFingerprintConstraint частичный уникальный индекс по отпечатку токена
	tokenFingerprintConstraint = "bookings_token_fingerprint_key"

	// activeMemberDayConstraint частичный уникальный индекс (tenant, member, date)
	// по активным броням, цель ON CONFLICT в Upsert
	activeMemberDayConstraint = "bookings_active_member_day_key"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"tenant_id",
	"member_id",
	"booking_date",
	"slot_id",
	"status",
	"method",
	"token_fingerprint",
	"member_name",
	"member_phone",
	"carried_from_previous",
	"auto_booked",
	"overflow_warnings",
	"check_in_at",
	"check_out_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// dateArg приводит дату к строке YYYY-MM-DD для связывания с колонкой DATE
// Timestamp-параметр кастуется к DATE в часовом поясе сессии БД и может
// сместить день - строка сравнивается как есть
func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// Repository репозиторий бронирований слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert атомарно создает или обновляет активную бронь участника на день
//
// Инвариант "одна активная бронь на (tenant, member, date)" обеспечивается
// частичным уникальным индексом и ON CONFLICT ... DO UPDATE: проигравший
// конкурентной гонки запрос не падает, а превращается в обновление той же
// строки. Возвращает (booking, isUpdate): isUpdate=true, если была обновлена
// существующая строка (детектируется по xmax).
//
// Повторное использование токена другой бронью ловится уникальным индексом
// по отпечатку и возвращается как ErrTokenAlreadyUsed.
func (r *Repository) Upsert(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"member_id",
			"booking_date",
			"slot_id",
			"status",
			"method",
			"token_fingerprint",
			"member_name",
			"member_phone",
			"carried_from_previous",
			"auto_booked",
		).
		Values(
			b.TenantID,
			b.MemberID,
			dateArg(b.BookingDate),
			b.SlotID,
			domain.StatusConfirmed,
			b.Method,
			b.TokenFingerprint,
			b.MemberName,
			b.MemberPhone,
			b.CarriedFromPrevious,
			b.AutoBooked,
		).
		Suffix(`ON CONFLICT (tenant_id, member_id, booking_date) WHERE status IN ('confirmed', 'completed')
			DO UPDATE SET
				slot_id = EXCLUDED.slot_id,
				method = EXCLUDED.method,
				token_fingerprint = COALESCE(EXCLUDED.token_fingerprint, bookings.token_fingerprint),
				member_name = EXCLUDED.member_name,
				member_phone = EXCLUDED.member_phone,
				carried_from_previous = EXCLUDED.carried_from_previous,
				auto_booked = EXCLUDED.auto_booked,
				status = 'confirmed',
				cancellation_reason = NULL,
				cancelled_at = NULL,
				updated_at = NOW()
			RETURNING id, overflow_warnings, created_at, updated_at, (xmax <> 0) AS is_update`).
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		createdAt, updatedAt sql.NullTime
		isUpdate             bool
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.OverflowWarnings,
		&createdAt,
		&updatedAt,
		&isUpdate,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == tokenFingerprintConstraint {
			return nil, false, ErrTokenAlreadyUsed
		}
		return nil, false, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	b.Status = domain.StatusConfirmed
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, isUpdate, nil
}

// GetActive получает активную бронь участника на дату
func (r *Repository) GetActive(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"member_id":    memberID,
			"booking_date": dateArg(date),
			"status":       activeStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByDate получает все активные брони зала на дату
// Сортировка по слоту каталога, затем по имени участника - порядок дашборда
func (r *Repository) ListActiveByDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"booking_date": dateArg(date),
			"status":       activeStatusStrings(),
		}).
		OrderBy("slot_id ASC, member_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveBySlot подсчитывает активные брони в слоте на дату
// Используется для пересчёта заполненности после Upsert (soft overflow)
func (r *Repository) CountActiveBySlot(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"booking_date": dateArg(date),
			"slot_id":      slot,
			"status":       activeStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListByMember получает историю бронирований участника, свежие первыми
// since (опционально) ограничивает выборку по нижней границе даты
func (r *Repository) ListByMember(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"member_id": memberID,
		}).
		OrderBy("booking_date DESC, updated_at DESC")

	if since != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": dateArg(*since)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasAnyByMember проверяет, бронировал ли участник хоть раз
func (r *Repository) HasAnyByMember(ctx context.Context, tenantID, memberID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"member_id": memberID,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasAnyByMember - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasAnyByMember - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Cancel отменяет активную бронь участника на дату
// Одно атомарное UPDATE-выражение: условие status='confirmed' реализует
// машину статусов на уровне хранилища
func (r *Repository) Cancel(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error) {
	return r.transition(ctx, tenantID, memberID, date, domain.StatusCancelled, &reason)
}

// UpdateStatus переводит активную бронь в no_show или completed
// Переходы допустимы только из confirmed (терминальные статусы не меняются)
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus) (*domain.Booking, error) {
	return r.transition(ctx, tenantID, memberID, date, status, nil)
}

// IncrementOverflowWarnings увеличивает счётчик предупреждений о переполнении
// Вызывается вне транзакции бронирования, ошибки не критичны для брони
func (r *Repository) IncrementOverflowWarnings(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("overflow_warnings", squirrel.Expr("overflow_warnings + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementOverflowWarnings - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementOverflowWarnings - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListTenantIDs получает все залы, в которых когда-либо были брони
// Используется ежедневной рассылкой напоминаний
func (r *Repository) ListTenantIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT tenant_id").
		From("bookings").
		OrderBy("tenant_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListTenantIDs - scan tenant_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListMembersWithoutActiveBooking получает участников зала, которые бронировали
// раньше, но не имеют активной брони на указанную дату
// Имя берется из последней по времени брони участника
func (r *Repository) ListMembersWithoutActiveBooking(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT ON (member_id) member_id", "member_name").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Expr(
			`member_id NOT IN (
				SELECT member_id FROM bookings
				WHERE tenant_id = ? AND booking_date = ? AND status IN ('confirmed', 'completed')
			)`, tenantID, dateArg(date),
		)).
		OrderBy("member_id ASC, booking_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMembersWithoutActiveBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMembersWithoutActiveBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]domain.MemberRef, 0)
	for rows.Next() {
		var ref domain.MemberRef
		if err := rows.Scan(&ref.MemberID, &ref.MemberName); err != nil {
			return nil, fmt.Errorf("%w: ListMembersWithoutActiveBooking - scan row: %v", ErrScanRow, err)
		}
		members = append(members, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMembersWithoutActiveBooking - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// transition выполняет переход статуса одним UPDATE-выражением
func (r *Repository) transition(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus, reason *string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"member_id":    memberID,
			"booking_date": dateArg(date),
			"status":       domain.StatusConfirmed,
		})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: transition - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: transition - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBookingRow(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.MemberID,
		&booking.BookingDate,
		&booking.SlotID,
		&booking.Status,
		&booking.Method,
		&booking.TokenFingerprint,
		&booking.MemberName,
		&booking.MemberPhone,
		&booking.CarriedFromPrevious,
		&booking.AutoBooked,
		&booking.OverflowWarnings,
		&booking.CheckInAt,
		&booking.CheckOutAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
