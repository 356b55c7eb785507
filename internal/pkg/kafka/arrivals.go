package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"

	"github.com/AlekSi/pointer"
	"github.com/IBM/sarama"
)

type arrivalMessage struct {
	CarrierID  string    `json:"truck_id"`
	ShipmentID string    `json:"shipment_id"`
	Lat        *float64  `json:"lat"`
	Lon        *float64  `json:"lon"`
	DetectedAt time.Time `json:"detected_at"`
}

// ArrivalPublisher пишет события прибытия в топик, ключ - идентификатор перевозчика.
type ArrivalPublisher struct {
	log      logger.Logger
	producer sarama.SyncProducer
	topic    string
}

func NewArrivalPublisher(log logger.Logger, producer sarama.SyncProducer, topic string) *ArrivalPublisher {
	return &ArrivalPublisher{
		log:      log.With(logger.NewField("component", "arrival-publisher")),
		producer: producer,
		topic:    topic,
	}
}

func (p *ArrivalPublisher) NotifyArrival(ctx context.Context, event entities.ArrivalEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := arrivalMessage{
		CarrierID:  event.CarrierID,
		ShipmentID: event.ShipmentID,
		DetectedAt: event.DetectedAt.UTC(),
	}
	if event.LastKnown != nil {
		msg.Lat = pointer.To(event.LastKnown.Lat)
		msg.Lon = pointer.To(event.LastKnown.Lon)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal arrival: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.CarrierID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish arrival %s: %w", event.CarrierID, err)
	}

	p.log.Info("arrival published",
		logger.NewField("carrier_id", event.CarrierID),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
	return nil
}

func (p *ArrivalPublisher) Close() error {
	return p.producer.Close()
}
