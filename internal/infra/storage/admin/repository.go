package admin

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Repository репозиторий администраторов (кроме главного, он задается в конфиге)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Exists true, если пользователь есть в таблице администраторов
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("admins").
		Where(squirrel.Eq{"user_id": userID}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// Add добавляет администратора; повторное добавление ничего не меняет
func (r *Repository) Add(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admins").
		Columns("user_id").
		Values(userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Remove удаляет администратора
func (r *Repository) Remove(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admins").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// List ID администраторов из таблицы по возрастанию
func (r *Repository) List(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id").
		From("admins").
		OrderBy("user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}
