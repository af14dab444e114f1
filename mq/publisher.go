// Package mq publishes settlement events to RabbitMQ.
package mq

import (
	"encoding/json"

	pokerserver "github.com/FICHEKK/poker-server"
	"github.com/streadway/amqp"
)

// Config describes the broker connection and the fanout exchange settlement
// events are published to.
type Config struct {
	URL      string
	Exchange string
	Durable  bool
}

// RabbitPublisher broadcasts every settled round on a fanout exchange so
// statistics and audit consumers can subscribe independently.
type RabbitPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	config     Config
}

func NewRabbitPublisher(config Config) (*RabbitPublisher, error) {
	connection, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, err
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(config.Exchange, "fanout", config.Durable, false, false, false, nil)
	if err != nil {
		connection.Close()
		return nil, err
	}

	return &RabbitPublisher{
		connection: connection,
		channel:    channel,
		config:     config,
	}, nil
}

func (p *RabbitPublisher) PublishSettlement(event pokerserver.SettlementEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.config.Exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *RabbitPublisher) Close() {
	if p.connection != nil {
		p.connection.Close()
	}
}
