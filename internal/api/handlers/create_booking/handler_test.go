package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start, _ := req.StartTime.On(req.Date)
	return &createBooking.Response{
		ID:              77,
		UserID:          req.UserID,
		ProgramID:       req.ProgramID,
		ProgramName:     "Комплекс",
		DurationMinutes: 60,
		CarNumber:       req.CarNumber,
		BookingDatetime: start,
		Status:          "scheduled",
		CreatedAt:       time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 10))
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const validBody = `{"programId":2,"carNumber":"aa1234bb","bookingDate":"2026-10-20","startTime":"12:00"}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(10), uc.got.UserID)
	assert.Equal(t, "12:00", uc.got.StartTime.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "2026-10-20", resp.BookingDate)
	assert.Equal(t, "12:00", resp.StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"programId":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"programId":2,"companyId":1}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"programId":2,"carNumber":"AA1234BB","bookingDate":"20.10.2026","startTime":"12:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"programId":2,"carNumber":"AA1234BB","bookingDate":"2026-10-20","startTime":"noon"}`, wantStatus: http.StatusBadRequest},
		{name: "slot taken", body: validBody, err: fmt.Errorf("%w: conflict", createBooking.ErrSlotTaken), wantStatus: http.StatusConflict},
		{name: "program not found", body: validBody, err: createBooking.ErrProgramNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid time slot", body: validBody, err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "invalid car number", body: validBody, err: createBooking.ErrInvalidCarNumber, wantStatus: http.StatusBadRequest},
		{name: "internal", body: validBody, err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
