package tasks

import (
	"encoding/json"
	"time"

	"rideshare/models"

	"github.com/hibiken/asynq"
)

const TypeDeliverOutbound = "outbound:deliver"

func NewOutboundTask(msg models.OutboundMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDeliverOutbound, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

func ParseOutboundTask(task *asynq.Task) (models.OutboundMessage, error) {
	var msg models.OutboundMessage
	err := json.Unmarshal(task.Payload(), &msg)
	return msg, err
}
