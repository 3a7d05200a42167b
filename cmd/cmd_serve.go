package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/api"
	addAdminHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/add_admin"
	createBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_booking"
	createProgramHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_program"
	deleteBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/delete_booking"
	deleteProgramHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/delete_program"
	finishWashHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/finish_wash"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_booking"
	getStatisticsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_statistics"
	getUserBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_user_bookings"
	listAdminsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_admins"
	listBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_bookings"
	listProgramsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_programs"
	listUsersHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_users"
	registerUserHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/register_user"
	removeAdminHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/remove_admin"
	rescheduleBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/reschedule_booking"
	startWashHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/start_wash"
	updateProgramHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_program"
	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/internal/infra/migrations"
	"github.com/m04kA/SMC-CarWashService/internal/infra/queue"
	adminRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/admin"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	programRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/program"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/telegram"
	adminsService "github.com/m04kA/SMC-CarWashService/internal/service/admins"
	bookingsService "github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	notifierService "github.com/m04kA/SMC-CarWashService/internal/service/notifier"
	programsService "github.com/m04kA/SMC-CarWashService/internal/service/programs"
	statisticsService "github.com/m04kA/SMC-CarWashService/internal/service/statistics"
	usersService "github.com/m04kA/SMC-CarWashService/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
	"github.com/m04kA/SMC-CarWashService/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the HTTP API and the early-arrival notification scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-CarWashService...")
	log.Info("Configuration loaded from %s", configPath)

	schedule := cfg.Schedule.ToDomain()
	log.Info("Working window %02d:00-%02d:00, buffer %d min",
		schedule.WorkStartHour, schedule.WorkEndHour, schedule.BufferMinutes)

	// Инициализируем метрики (если включены). Методы Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции (если включено)
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.DSN(), log); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	programRepository := programRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	// Интеграции
	telegramClient := telegram.NewClient(
		cfg.Telegram.APIURL,
		cfg.Telegram.BotToken,
		time.Duration(cfg.Telegram.Timeout)*time.Second,
		log,
	)
	if cfg.Telegram.BotToken == "" {
		log.Warn("Telegram bot token is empty, customer messages are only logged")
	}

	// Сервисы
	adminSvc := adminsService.NewService(adminRepository, cfg.Admin.MainAdminID, log)
	programSvc := programsService.NewService(programRepository, log)
	userSvc := usersService.NewService(userRepository, log)
	statisticsSvc := statisticsService.NewService(bookingRepository, log)

	notifierSvc, stopNotifier, err := newNotifier(cfg, bookingRepository, telegramClient, metricsCollector, log)
	if err != nil {
		return err
	}
	defer stopNotifier()

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		adminSvc,
		telegramClient,
		notifierSvc,
		metricsCollector,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		programRepository,
		userRepository,
		txMgr,
		schedule,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		programRepository,
		schedule,
		log,
	)

	// Роутер
	opts := api.RouterOptions{
		Admins: adminSvc,
		Logger: log,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}

	router := api.NewRouter(api.Handlers{
		ListPrograms:      listProgramsHandler.NewHandler(programSvc, log).Handle,
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle,
		RegisterUser:      registerUserHandler.NewHandler(userSvc, log).Handle,
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log).Handle,
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log).Handle,
		GetUserBookings:   getUserBookingsHandler.NewHandler(bookingSvc, log).Handle,
		ListBookings:      listBookingsHandler.NewHandler(bookingSvc, log).Handle,
		StartWash:         startWashHandler.NewHandler(bookingSvc, log).Handle,
		FinishWash:        finishWashHandler.NewHandler(bookingSvc, log).Handle,
		RescheduleBooking: rescheduleBookingHandler.NewHandler(bookingSvc, log).Handle,
		DeleteBooking:     deleteBookingHandler.NewHandler(bookingSvc, log).Handle,
		CreateProgram:     createProgramHandler.NewHandler(programSvc, log).Handle,
		UpdateProgram:     updateProgramHandler.NewHandler(programSvc, log).Handle,
		DeleteProgram:     deleteProgramHandler.NewHandler(programSvc, log).Handle,
		GetStatistics:     getStatisticsHandler.NewHandler(statisticsSvc, log).Handle,
		ListUsers:         listUsersHandler.NewHandler(userSvc, log).Handle,
		ListAdmins:        listAdminsHandler.NewHandler(adminSvc, log).Handle,
		AddAdmin:          addAdminHandler.NewHandler(adminSvc, log).Handle,
		RemoveAdmin:       removeAdminHandler.NewHandler(adminSvc, log).Handle,
	}, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Received %s, shutting down server...", sig)
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// newNotifier создает сервис приглашений с выбранным планировщиком.
// Возвращаемая функция останавливает планировщик и воркер
func newNotifier(
	cfg *config.Config,
	bookingRepository *bookingRepo.Repository,
	telegramClient *telegram.Client,
	metricsCollector *metrics.Metrics,
	log *logger.Logger,
) (*notifierService.Service, func(), error) {
	schedule := cfg.Schedule.ToDomain()

	switch cfg.Notifier.Scheduler {
	case config.SchedulerTimer:
		timers := notifierService.NewTimerScheduler(log)
		svc := notifierService.NewService(bookingRepository, telegramClient, timers, schedule, metricsCollector, log)
		timers.SetHandler(svc.Deliver)
		log.Info("Early-arrival scheduler: in-process timers")

		return svc, timers.Stop, nil

	case config.SchedulerAsynq:
		redis := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		scheduler := queue.NewScheduler(redis, cfg.Notifier.Queue, log)
		svc := notifierService.NewService(bookingRepository, telegramClient, scheduler, schedule, metricsCollector, log)

		worker := queue.NewWorker(redis, cfg.Notifier.Queue, cfg.Notifier.Concurrency, svc.Deliver, log)
		if err := worker.Start(); err != nil {
			_ = scheduler.Close()
			return nil, nil, err
		}
		log.Info("Early-arrival scheduler: asynq (redis=%s, queue=%s)", cfg.Redis.Addr, cfg.Notifier.Queue)

		stop := func() {
			worker.Shutdown()
			if err := scheduler.Close(); err != nil {
				log.Warn("Failed to close asynq client: %v", err)
			}
		}
		return svc, stop, nil

	default:
		return nil, nil, fmt.Errorf("unknown notifier scheduler %q", cfg.Notifier.Scheduler)
	}
}
