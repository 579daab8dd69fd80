package global

import (
	"github.com/go-redis/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// Handles opened by config.InitConfig and released by Close.
var (
	// Db is the pooled handle behind the journal store and student
	// service. Always set once InitConfig returns.
	Db *gorm.DB

	// RedisDB backs the likes leaderboard; nil when redis.addr is empty,
	// in which case the leaderboard is ranked from Db.
	RedisDB *redis.Client

	// RabbitConn owns RabbitChannel; both are nil when rabbitmq.url is
	// empty and like events are not published.
	RabbitConn *amqp.Connection

	// RabbitChannel carries like events to the durable like queue. Callers
	// share it through services.AMQPPublisher, which serializes publishes.
	RabbitChannel *amqp.Channel
)

// Close releases every opened handle.
func Close() {
	if RabbitChannel != nil {
		RabbitChannel.Close()
	}
	if RabbitConn != nil {
		RabbitConn.Close()
	}
	if RedisDB != nil {
		RedisDB.Close()
	}
	if Db != nil {
		if sqlDB, err := Db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
