package queue

import "errors"

var (
	ErrEncodeTask  = errors.New("queue: failed to encode task")
	ErrDecodeTask  = errors.New("queue: failed to decode task")
	ErrEnqueueTask = errors.New("queue: failed to enqueue task")
	ErrStartWorker = errors.New("queue: failed to start worker")
)
