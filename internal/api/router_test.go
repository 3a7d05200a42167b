package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

const adminID = "1"

type fakeAdmins struct{}

func (fakeAdmins) IsAdmin(_ context.Context, userID int64) (bool, error) {
	return userID == 1, nil
}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	}
}

func testRouter() http.Handler {
	return NewRouter(Handlers{
		ListPrograms:      named("ListPrograms"),
		GetAvailableSlots: named("GetAvailableSlots"),
		RegisterUser:      named("RegisterUser"),
		CreateBooking:     named("CreateBooking"),
		GetBooking:        named("GetBooking"),
		GetUserBookings:   named("GetUserBookings"),
		ListBookings:      named("ListBookings"),
		StartWash:         named("StartWash"),
		FinishWash:        named("FinishWash"),
		RescheduleBooking: named("RescheduleBooking"),
		DeleteBooking:     named("DeleteBooking"),
		CreateProgram:     named("CreateProgram"),
		UpdateProgram:     named("UpdateProgram"),
		DeleteProgram:     named("DeleteProgram"),
		GetStatistics:     named("GetStatistics"),
		ListUsers:         named("ListUsers"),
		ListAdmins:        named("ListAdmins"),
		AddAdmin:          named("AddAdmin"),
		RemoveAdmin:       named("RemoveAdmin"),
	}, RouterOptions{
		Admins: fakeAdmins{},
		Logger: logger.NewNop(),
	})
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		userID string
		want   string
	}{
		{http.MethodGet, "/api/v1/programs", "", "ListPrograms"},
		{http.MethodGet, "/api/v1/programs/2/available-slots?date=2026-10-20", "", "GetAvailableSlots"},
		{http.MethodPost, "/api/v1/users", "10", "RegisterUser"},
		{http.MethodPost, "/api/v1/bookings", "10", "CreateBooking"},
		{http.MethodGet, "/api/v1/bookings/5", "10", "GetBooking"},
		{http.MethodGet, "/api/v1/users/10/bookings", "10", "GetUserBookings"},
		{http.MethodGet, "/api/v1/admin/bookings?date=2026-10-20", adminID, "ListBookings"},
		{http.MethodPost, "/api/v1/admin/bookings/5/start", adminID, "StartWash"},
		{http.MethodPost, "/api/v1/admin/bookings/5/finish", adminID, "FinishWash"},
		{http.MethodPatch, "/api/v1/admin/bookings/5", adminID, "RescheduleBooking"},
		{http.MethodDelete, "/api/v1/admin/bookings/5", adminID, "DeleteBooking"},
		{http.MethodPost, "/api/v1/admin/programs", adminID, "CreateProgram"},
		{http.MethodPatch, "/api/v1/admin/programs/3", adminID, "UpdateProgram"},
		{http.MethodDelete, "/api/v1/admin/programs/3", adminID, "DeleteProgram"},
		{http.MethodGet, "/api/v1/admin/statistics", adminID, "GetStatistics"},
		{http.MethodGet, "/api/v1/admin/users", adminID, "ListUsers"},
		{http.MethodGet, "/api/v1/admin/admins", adminID, "ListAdmins"},
		{http.MethodPost, "/api/v1/admin/admins", adminID, "AddAdmin"},
		{http.MethodDelete, "/api/v1/admin/admins/7", adminID, "RemoveAdmin"},
	}

	router := testRouter()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(middleware.UserIDHeader, tt.userID)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_Guards(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		userID string
		want   int
	}{
		{name: "customer route without header", method: http.MethodPost, path: "/api/v1/bookings", want: http.StatusUnauthorized},
		{name: "admin route without header", method: http.MethodGet, path: "/api/v1/admin/bookings", want: http.StatusUnauthorized},
		{name: "admin route as customer", method: http.MethodPost, path: "/api/v1/admin/bookings/5/start", userID: "10", want: http.StatusForbidden},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nothing", userID: "10", want: http.StatusNotFound},
	}

	router := testRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(middleware.UserIDHeader, tt.userID)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
