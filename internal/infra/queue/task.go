package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// TypeEarlyArrival тип задачи приглашения приехать раньше
const TypeEarlyArrival = "booking:early_arrival"

// taskID один ID на завершенную запись: повторное планирование не создает дубль
func taskID(finishedBookingID int64) string {
	return fmt.Sprintf("early-arrival:%d", finishedBookingID)
}

func newEarlyArrivalTask(task domain.EarlyArrivalTask) (*asynq.Task, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("%w: newEarlyArrivalTask - json.Marshal: %v", ErrEncodeTask, err)
	}
	return asynq.NewTask(TypeEarlyArrival, payload), nil
}

func decodeEarlyArrivalTask(t *asynq.Task) (domain.EarlyArrivalTask, error) {
	var task domain.EarlyArrivalTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return task, fmt.Errorf("%w: decodeEarlyArrivalTask - json.Unmarshal: %v", ErrDecodeTask, err)
	}
	if task.FinishedBookingID <= 0 || task.NextBookingID <= 0 {
		return task, fmt.Errorf("%w: decodeEarlyArrivalTask: empty booking ids", ErrDecodeTask)
	}
	return task, nil
}
