package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert регистрирует клиента или обновляет его данные.
// Если телефон не передан, сохраняется ранее известный
func (r *Repository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("user_id", "username", "phone_number", "first_name", "last_name").
		Values(user.UserID, user.Username, user.PhoneNumber, user.FirstName, user.LastName).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			phone_number = COALESCE(EXCLUDED.phone_number, users.phone_number),
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name
		RETURNING user_id, username, phone_number, first_name, last_name, registered_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}

// List последние зарегистрированные клиенты, новые первыми
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "username", "phone_number", "first_name", "last_name", "registered_at").
		From("users").
		OrderBy("registered_at DESC", "user_id DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                                   domain.User
		username, phone, firstName, lastName sql.NullString
		registeredAt                        sql.NullTime
	)

	if err := row.Scan(&u.UserID, &username, &phone, &firstName, &lastName, &registeredAt); err != nil {
		return nil, err
	}

	u.Username = nullString(username)
	u.PhoneNumber = nullString(phone)
	u.FirstName = nullString(firstName)
	u.LastName = nullString(lastName)
	u.RegisteredAt = types.WallClock(registeredAt.Time)

	return &u, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
