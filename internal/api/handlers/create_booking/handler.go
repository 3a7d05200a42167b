package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgInvalidDate        = "некоректний формат дати, очікується YYYY-MM-DD"
	msgInvalidTime        = "некоректний формат часу, очікується HH:MM"
	msgMissingUserID      = "відсутній ID користувача"
	msgSlotTaken          = "обраний час уже зайнятий"
	msgProgramNotFound    = "програму не знайдено"
	msgInvalidTimeSlot    = "обраний час недоступний для запису"
	msgInvalidCarNumber   = "некоректний номер авто, очікується формат AA1234BB"
	msgInvalidPhone       = "некоректний номер телефону"
	msgInvalidInput       = "некоректні дані запиту"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		var pe *parseError
		if errors.As(err, &pe) && pe.field == "startTime" {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, program_id=%d, %s %s",
				userID, req.ProgramID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrProgramNotFound):
			h.logger.Warn("POST /bookings - Program not found: program_id=%d", req.ProgramID)
			handlers.RespondNotFound(w, msgProgramNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, %s %s", userID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidCarNumber):
			handlers.RespondBadRequest(w, msgInvalidCarNumber)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, program_id=%d, error=%v",
				userID, req.ProgramID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
