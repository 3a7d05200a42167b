package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров date, userId, car
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Date:      handlers.QueryString(r, "date"),
		CarNumber: handlers.QueryString(r, "car"),
	}

	if raw := handlers.QueryString(r, "userId"); raw != nil {
		userID, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = &userID
	}

	return req, nil
}
