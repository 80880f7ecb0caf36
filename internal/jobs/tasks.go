package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeHeartbeat = "health:heartbeat"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

type HeartbeatPayload struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

func NewHeartbeatTask() (*asynq.Task, error) {
	payload, err := json.Marshal(HeartbeatPayload{ScheduledAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeHeartbeat, payload, asynq.Queue(QueueLow)), nil
}
