package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Действия мигратора
const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var (
	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrations: failed to migrate")

	// ErrUnknownAction возвращается для неизвестного действия
	ErrUnknownAction = errors.New("migrations: unknown action")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: open embedded source: %v", ErrMigrate, err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: create migrate instance: %v", ErrMigrate, err)
	}

	return mig, nil
}

// Run выполняет действие над схемой БД
func Run(dsn, action string, logger Logger) error {
	switch action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("Database schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMigrate, action, err)
	}

	version, dirty, _ := mig.Version()
	logger.Info("Database migrations applied: action=%s, version=%d, dirty=%t", action, version, dirty)

	return nil
}

// Up применяет все новые миграции
func Up(dsn string, logger Logger) error {
	return Run(dsn, ActionUp, logger)
}

// Down откатывает последнюю миграцию
func Down(dsn string, logger Logger) error {
	return Run(dsn, ActionDown, logger)
}
