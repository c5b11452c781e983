package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ordermgr/internal/models"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue is used when Config.Queue is empty.
const DefaultQueue = "order_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp channels must not be used for concurrent publishes.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// order event queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	log.Infof("RabbitMQ client connected and %s declared", queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// NewPublishing builds the persistent JSON message for an order event.
func NewPublishing(event models.OrderEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event to JSON: %w", err)
	}
	messageID := event.ID
	if messageID == "" {
		messageID = uuid.New().String()
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    messageID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}, nil
}

// PublishOrderEvent publishes an order lifecycle event to the order queue
// through the default exchange.
func (c *Client) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debugf("Sent order event %s: %s", msg.MessageId, msg.Body)
	return nil
}

// DecodeOrderEvent parses a delivered message body.
func DecodeOrderEvent(body []byte) (models.OrderEvent, error) {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return models.OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.Type == "" || event.OrderID == 0 {
		return models.OrderEvent{}, fmt.Errorf("order event is missing type or order_id")
	}
	return event, nil
}

// ConsumeOrderEvents starts a goroutine that hands every order event to
// handler. Successfully handled messages are acked. Undecodable messages are
// dropped, and messages whose handler fails are requeued once.
func (c *Client) ConsumeOrderEvents(handler func(models.OrderEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel, c.queue)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Infof("Waiting for order events on %s", queue.Name)

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
		log.Info("Order event consumer stopped")
	}()

	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(models.OrderEvent) error) {
	event, err := DecodeOrderEvent(msg.Body)
	if err != nil {
		log.Warnf("Dropping message %d: %v", msg.DeliveryTag, err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Errorf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}

	if err := handler(event); err != nil {
		log.Errorf("Error processing order event %s: %v", event.ID, err)
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			log.Errorf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		log.Errorf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
	}
}

// LogOrderEvent is the default consumer handler. It records the event.
func LogOrderEvent(event models.OrderEvent) error {
	log.Infow("Received order event",
		"id", event.ID,
		"type", event.Type,
		"order_id", event.OrderID,
		"customer_id", event.CustomerID,
		"total", event.Total.StringFixed(2),
	)
	return nil
}
