package config

import (
	"fmt"
	"log"

	"journify/global"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultLikeQueue = "like.queue"

// OpenRabbit dials cfg.Url, opens one channel and declares the durable
// like queue on it. Nothing stays open when any step fails.
func OpenRabbit(cfg RabbitMQConfig) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue %q: %w", cfg.Queue, err)
	}
	return conn, ch, nil
}

func initRabbit() {
	if AppConfig.RabbitMQ.Url == "" {
		log.Println("rabbitmq url empty, like events disabled")
		return
	}
	if AppConfig.RabbitMQ.Queue == "" {
		AppConfig.RabbitMQ.Queue = defaultLikeQueue
	}

	conn, ch, err := OpenRabbit(AppConfig.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ: %v", err)
	}

	global.RabbitConn = conn
	global.RabbitChannel = ch
	log.Println("RabbitMQ initialized, queue:", AppConfig.RabbitMQ.Queue)
}
