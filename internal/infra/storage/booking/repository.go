package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Repository репозиторий записей на мойку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись. Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"program_id",
			"car_number",
			"booking_datetime",
			"status",
		).
		Values(
			booking.UserID,
			booking.ProgramID,
			booking.CarNumber,
			booking.BookingDatetime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		// %w сохраняет код ошибки PostgreSQL для вызывающего кода (40001, 23503)
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = types.WallClock(createdAt.Time)

	return booking, nil
}

// GetByID получает запись по ID вместе с данными программы и клиента
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// LockDate берет транзакционную advisory-блокировку на календарную дату.
// Все создания записей на одну дату выполняются последовательно.
// Вне транзакции блокировка снимается сразу после запроса, поэтому вызывать
// имеет смысл только внутри txManager.Do*
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", dateLockKey(date)); err != nil {
		return fmt.Errorf("%w: LockDate - acquire advisory lock: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает все записи на дату (в любом статусе) с длительностями программ.
// Внутри транзакции строки блокируются (FOR UPDATE OF b)
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := domain.DayStart(date)
	selectBuilder := selectBookings().
		Where(squirrel.GtOrEq{"b.booking_datetime": from}).
		Where(squirrel.Lt{"b.booking_datetime": from.AddDate(0, 0, 1)}).
		OrderBy("b.booking_datetime ASC", "b.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetNextScheduled ближайшая запись в статусе scheduled с номинальным временем
// строго после after и строго до before. При равном времени берется меньший id
func (r *Repository) GetNextScheduled(ctx context.Context, after, before time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.status": domain.StatusScheduled}).
		Where(squirrel.Gt{"b.booking_datetime": after}).
		Where(squirrel.Lt{"b.booking_datetime": before}).
		OrderBy("b.booking_datetime ASC", "b.id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetNextScheduled - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetNextScheduled - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByUserID незавершенные записи клиента по возрастанию времени
func (r *Repository) GetActiveByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.user_id": userID}).
		Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("b.booking_datetime ASC", "b.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List административный список записей.
//
// Фильтры комбинируются через AND:
//   - Date: записи на календарную дату
//   - UserID: записи клиента
//   - CarNumber: подстрока номера авто без учета регистра
//
// Без фильтров возвращаются только незавершенные записи.
// Сначала идут записи в процессе мойки, затем по номинальному времени
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func buildListQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	selectBuilder := selectBookings()

	if filter.Date != nil {
		from := domain.DayStart(*filter.Date)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"b.booking_datetime": from}).
			Where(squirrel.Lt{"b.booking_datetime": from.AddDate(0, 0, 1)})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.CarNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"b.car_number": "%" + *filter.CarNumber + "%"})
	}
	if filter.IsEmpty() {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusFinished})
	}

	return selectBuilder.
		OrderBy("(b.status = 'in_progress') DESC", "b.booking_datetime ASC", "b.id ASC").
		ToSql()
}

// StartWash атомарно переводит запись из scheduled в in_progress.
// Возвращает false, если запись не в статусе scheduled (или не существует)
func (r *Repository) StartWash(ctx context.Context, id int64, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusInProgress).
		Set("actual_start", squirrel.Expr("COALESCE(actual_start, ?)", at)).
		Where(squirrel.Eq{"id": id, "status": domain.StatusScheduled}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: StartWash - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "StartWash", query, args)
}

// FinishWash атомарно переводит запись в finished из любого другого статуса.
// Возвращает false, если запись уже завершена (или не существует)
func (r *Repository) FinishWash(ctx context.Context, id int64, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusFinished).
		Set("actual_start", squirrel.Expr("COALESCE(actual_start, ?)", at)).
		Set("actual_end", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusFinished}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: FinishWash - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "FinishWash", query, args)
}

// Update административное изменение записи без проверки конфликтов
func (r *Repository) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").Where(squirrel.Eq{"id": id})

	if update.BookingDatetime != nil {
		updateBuilder = updateBuilder.Set("booking_datetime", *update.BookingDatetime)
	}
	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
	}
	if update.ClearActualStart {
		updateBuilder = updateBuilder.Set("actual_start", nil)
	}
	if update.ClearActualEnd {
		updateBuilder = updateBuilder.Set("actual_end", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	applied, err := r.execConditional(ctx, executor, "Update", query, args)
	if err != nil {
		return err
	}
	if !applied {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	applied, err := r.execConditional(ctx, executor, "Delete", query, args)
	if err != nil {
		return err
	}
	if !applied {
		return ErrBookingNotFound
	}

	return nil
}

// GetStatistics агрегирует записи с номинальной датой в [from, to]
// по названию программы: количество и сумма цен, по убыванию количества
func (r *Repository) GetStatistics(ctx context.Context, from, to time.Time) ([]domain.ProgramStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.name",
		"COUNT(b.id)",
		"COALESCE(SUM(p.price), 0)",
	).
		From("bookings b").
		LeftJoin("programs p ON p.id = b.program_id").
		Where(squirrel.GtOrEq{"b.booking_datetime": domain.DayStart(from)}).
		Where(squirrel.Lt{"b.booking_datetime": domain.DayStart(to).AddDate(0, 0, 1)}).
		GroupBy("p.name").
		OrderBy("COUNT(b.id) DESC", "p.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]domain.ProgramStatistics, 0)
	for rows.Next() {
		var (
			name  sql.NullString
			entry domain.ProgramStatistics
		)
		if err := rows.Scan(&name, &entry.Count, &entry.Total); err != nil {
			return nil, fmt.Errorf("%w: GetStatistics - scan row: %v", ErrScanRow, err)
		}
		if name.Valid {
			entry.ProgramName = &name.String
		}
		stats = append(stats, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatistics - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (bool, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"u.username",
		"u.phone_number",
		"b.program_id",
		"b.car_number",
		"b.booking_datetime",
		"b.status",
		"b.actual_start",
		"b.actual_end",
		"p.name",
		"p.price",
		"p.duration_minutes",
		"b.created_at",
	).
		From("bookings b").
		LeftJoin("programs p ON p.id = b.program_id").
		LeftJoin("users u ON u.user_id = b.user_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                domain.Booking
		username, phone, name  sql.NullString
		programID              sql.NullInt64
		actualStart, actualEnd sql.NullTime
		price                  sql.NullFloat64
		duration               sql.NullInt64
		createdAt              sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&username,
		&phone,
		&programID,
		&booking.CarNumber,
		&booking.BookingDatetime,
		&booking.Status,
		&actualStart,
		&actualEnd,
		&name,
		&price,
		&duration,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDatetime = types.WallClock(booking.BookingDatetime)
	booking.CreatedAt = types.WallClock(createdAt.Time)

	if username.Valid {
		booking.Username = &username.String
	}
	if phone.Valid {
		booking.PhoneNumber = &phone.String
	}
	if programID.Valid {
		booking.ProgramID = &programID.Int64
	}
	if actualStart.Valid {
		booking.ActualStart = types.WallClockPtr(&actualStart.Time)
	}
	if actualEnd.Valid {
		booking.ActualEnd = types.WallClockPtr(&actualEnd.Time)
	}
	if name.Valid {
		booking.ProgramName = &name.String
	}
	if price.Valid {
		booking.ProgramPrice = &price.Float64
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		booking.DurationMinutes = &minutes
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
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

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// dateLockKey ключ advisory-блокировки даты: YYYYMMDD
func dateLockKey(date time.Time) int64 {
	return int64(date.Year()*10000 + int(date.Month())*100 + date.Day())
}
