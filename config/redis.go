package config

import (
	"log"

	"journify/global"

	"github.com/go-redis/redis"
)

// NewRedisClient connects to cfg.Addr and verifies the connection.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func initRedis() {
	if AppConfig.Redis.Addr == "" {
		log.Println("redis addr empty, skipping redis init")
		return
	}

	client, err := NewRedisClient(AppConfig.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	global.RedisDB = client
	log.Println("Redis initialized, addr:", AppConfig.Redis.Addr)
}
