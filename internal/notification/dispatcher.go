// Package notification delivers templated emails through the mailer
// pipeline. Delivery is best-effort: a lost notification must never fail
// the workflow that triggered it, so every error is logged and dropped.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	TemplateWelcome         = "welcome"
	TemplateOrderSuccess    = "order-success"
	TemplateCustomOrderWait = "custom-order-wait"
)

type Dispatcher interface {
	Notify(ctx context.Context, templateKey, recipient string, data map[string]interface{})
}

// messageWriter is the subset of kafka.Writer the dispatcher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaDispatcher struct {
	writer messageWriter
}

func NewKafkaDispatcher(writer *kafka.Writer) *KafkaDispatcher {
	return &KafkaDispatcher{writer: writer}
}

func newDispatcherWithWriter(writer messageWriter) *KafkaDispatcher {
	return &KafkaDispatcher{writer: writer}
}

type notificationEvent struct {
	Template  string                 `json:"template"`
	Recipient string                 `json:"recipient"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Notify publishes one notification event. It never returns an error.
func (d *KafkaDispatcher) Notify(ctx context.Context, templateKey, recipient string, data map[string]interface{}) {
	payload, err := json.Marshal(notificationEvent{
		Template:  templateKey,
		Recipient: recipient,
		Data:      data,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling %s notification for %s", templateKey, recipient)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("notification-%s", templateKey)),
		Value: payload,
	}

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s notification for %s", templateKey, recipient)
	}
}
