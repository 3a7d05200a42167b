package start_wash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) Start(_ context.Context, id int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "in_progress"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "started", path: "/bookings/5/start", wantStatus: http.StatusOK},
		{name: "bad id", path: "/bookings/abc/start", wantStatus: http.StatusBadRequest},
		{name: "zero id", path: "/bookings/0/start", wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/bookings/5/start", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "already started", path: "/bookings/5/start", err: bookings.ErrAlreadyStarted, wantStatus: http.StatusConflict},
		{name: "already finished", path: "/bookings/5/start", err: bookings.ErrAlreadyFinished, wantStatus: http.StatusConflict},
		{name: "internal", path: "/bookings/5/start", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/bookings/{bookingId}/start", NewHandler(fakeService{err: tt.err}, logger.NewNop()).Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
