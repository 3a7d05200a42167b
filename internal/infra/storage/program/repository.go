package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// Repository репозиторий каталога программ мойки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория программ
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет программу в каталог
func (r *Repository) Create(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("programs").
		Columns("name", "duration_minutes", "price", "description").
		Values(program.Name, program.DurationMinutes, program.Price, program.Description).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&program.ID)
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrProgramAlreadyExists, program.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return program, nil
}

// GetByID получает программу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPrograms().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	program, err := scanProgram(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan program: %v", ErrScanRow, err)
	}

	return program, nil
}

// List все программы по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.Program, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPrograms().
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	programs := make([]*domain.Program, 0)
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return programs, nil
}

// Update частично обновляет программу
// Обновляются только поля, которые не nil
func (r *Repository) Update(ctx context.Context, id int64, update domain.ProgramUpdate) (*domain.Program, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("programs").Where(squirrel.Eq{"id": id})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *update.DurationMinutes)
	}
	if update.Price != nil {
		updateBuilder = updateBuilder.Set("price", *update.Price)
	}
	if update.Description != nil {
		updateBuilder = updateBuilder.Set("description", *update.Description)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING id, name, duration_minutes, price, description").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	program, err := scanProgram(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrProgramAlreadyExists, ptr.Deref(update.Name, ""))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return program, nil
}

// Delete удаляет программу. У записей program_id становится NULL (ON DELETE SET NULL)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProgramNotFound
	}

	return nil
}

func selectPrograms() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "duration_minutes", "price", "description").
		From("programs")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgram(row rowScanner) (*domain.Program, error) {
	var (
		program     domain.Program
		description sql.NullString
	)

	if err := row.Scan(&program.ID, &program.Name, &program.DurationMinutes, &program.Price, &description); err != nil {
		return nil, err
	}
	program.Description = description.String

	return &program, nil
}
