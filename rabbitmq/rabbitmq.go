package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	EventInvoicePublished = "invoice.published"
	EventInvoicePaid      = "invoice.paid"

	contentTypeJSON = "application/json"
)

// InvoiceEvent is the payload published on invoice lifecycle transitions.
type InvoiceEvent struct {
	Type       string    `json:"type"`
	InvoiceID  string    `json:"invoice_id"`
	ClientID   string    `json:"client_id"`
	GrandTotal float64   `json:"grand_total"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Client interface {
	PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error
	Close() error
}

type DefaultClient struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *lecho.Logger
}

type ClientOption func(client *DefaultClient)

func WithExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.exchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// Dial connects to the broker with exponential backoff and declares the
// invoice topic exchange.
func Dial(uri string, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		exchange: "opsdesk_invoice",
	}
	for _, opt := range options {
		opt(client)
	}

	err := backoff.Retry(func() error {
		conn, err := amqp.Dial(uri)
		if err != nil {
			if client.logger != nil {
				client.logger.Errorf("Failed to connect to rabbitmq, retrying: %v", err)
			}
			return err
		}
		client.conn = conn
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, err
	}

	channel, err := client.conn.Channel()
	if err != nil {
		client.conn.Close()
		return nil, err
	}
	client.channel = channel

	// topic exchange so consumers can bind to invoice.published and
	// invoice.paid separately
	err = channel.ExchangeDeclare(
		client.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (client *DefaultClient) PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error {
	if event.Type == "" {
		return fmt.Errorf("invoice event without a type")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return client.channel.PublishWithContext(ctx,
		client.exchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload,
		},
	)
}

func (client *DefaultClient) Close() error {
	if client.channel != nil {
		client.channel.Close()
	}
	if client.conn != nil {
		return client.conn.Close()
	}
	return nil
}
