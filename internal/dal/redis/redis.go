package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTP codes live under otp:{phoneNumber} and expire on their own.
const (
	KeyOTP = "otp:"
	TTLOTP = 5 * time.Minute
)

// MustNewClient creates a new Redis client.
func MustNewClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("MARKETPLACE_REDIS_ADDR"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}

	return client
}
