package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
)

// Handlers обработчики маршрутов API
type Handlers struct {
	ListPrograms      http.HandlerFunc
	GetAvailableSlots http.HandlerFunc

	RegisterUser    http.HandlerFunc
	CreateBooking   http.HandlerFunc
	GetBooking      http.HandlerFunc
	GetUserBookings http.HandlerFunc

	ListBookings      http.HandlerFunc
	StartWash         http.HandlerFunc
	FinishWash        http.HandlerFunc
	RescheduleBooking http.HandlerFunc
	DeleteBooking     http.HandlerFunc
	CreateProgram     http.HandlerFunc
	UpdateProgram     http.HandlerFunc
	DeleteProgram     http.HandlerFunc
	GetStatistics     http.HandlerFunc
	ListUsers         http.HandlerFunc
	ListAdmins        http.HandlerFunc
	AddAdmin          http.HandlerFunc
	RemoveAdmin       http.HandlerFunc
}

// RouterOptions зависимости middleware
type RouterOptions struct {
	Admins  middleware.AdminChecker
	Logger  middleware.Logger
	Metrics middleware.HTTPMetrics // nil - метрики выключены
	// Путь для promhttp; пустой - эндпоинт не публикуется
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(opts.Logger))

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/programs", h.ListPrograms).Methods(http.MethodGet)
	api.HandleFunc("/programs/{programId}/available-slots", h.GetAvailableSlots).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-ID администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.AdminOnly(opts.Admins, opts.Logger))

	// --- Записи ---
	admin.HandleFunc("/bookings", h.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/start", h.StartWash).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/finish", h.FinishWash).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}", h.RescheduleBooking).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", h.DeleteBooking).Methods(http.MethodDelete)

	// --- Каталог программ ---
	admin.HandleFunc("/programs", h.CreateProgram).Methods(http.MethodPost)
	admin.HandleFunc("/programs/{programId}", h.UpdateProgram).Methods(http.MethodPatch)
	admin.HandleFunc("/programs/{programId}", h.DeleteProgram).Methods(http.MethodDelete)

	// --- Отчеты, клиенты, администраторы ---
	admin.HandleFunc("/statistics", h.GetStatistics).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/admins", h.ListAdmins).Methods(http.MethodGet)
	admin.HandleFunc("/admins", h.AddAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/admins/{userId}", h.RemoveAdmin).Methods(http.MethodDelete)

	// ============================================================
	// CUSTOMER ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/users", h.RegisterUser).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", h.GetUserBookings).Methods(http.MethodGet)

	return r
}
