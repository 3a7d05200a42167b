package domain

// EarlyArrivalTask отложенное приглашение следующему клиенту дня приехать раньше
type EarlyArrivalTask struct {
	FinishedBookingID int64 `json:"finishedBookingId"`
	NextBookingID     int64 `json:"nextBookingId"`
}
