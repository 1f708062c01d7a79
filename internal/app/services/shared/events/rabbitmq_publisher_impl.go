package events

import (
	"context"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/dto/responses"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Channel is the subset of *amqp091.Channel used to publish events.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type rabbitMQPublisher struct {
	Channel Channel
	Queue   string
	Log     *zap.Logger
	now     func() time.Time
}

// NewRabbitMQPublisher opens a channel on conn and declares the durable
// queue patient events are routed to.
func NewRabbitMQPublisher(conn *amqp091.Connection, queue string, logger *zap.Logger) (contracts.PatientEventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	return NewPublisherWithChannel(channel, queue, logger), nil
}

func NewPublisherWithChannel(channel Channel, queue string, logger *zap.Logger) contracts.PatientEventPublisher {
	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
		now:     time.Now,
	}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, eventType string, patientID string, patient *models.Patient) error {
	requestID := utils.GetRequestID(ctx)

	event := responses.PatientEvent{
		EventID:    utils.GenerateEventID(),
		Type:       eventType,
		PatientID:  patientID,
		OccurredAt: p.now().UTC(),
	}
	if patient != nil {
		event.Patient = patient
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID,
		Type:         eventType,
		Timestamp:    event.OccurredAt,
		Headers: amqp091.Table{
			constvars.RabbitMQHeaderMessageType:     constvars.RabbitMQMessageTypeJSON,
			constvars.RabbitMQHeaderRequeueStrategy: constvars.RabbitMQRequeueStrategyDrop,
		},
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, eventType),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingQueueNameKey, p.Queue),
	)
	return nil
}

func (p *rabbitMQPublisher) Close() error {
	return p.Channel.Close()
}
