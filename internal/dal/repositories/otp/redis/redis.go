package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/tiffinbox/marketplace/internal/dal/redis"
)

// OTPRedisRepository stores one-time codes with a TTL so stale codes expire on
// their own.
type OTPRedisRepository struct {
	client *goredis.Client
}

func NewOTPRedisRepository(client *goredis.Client) *OTPRedisRepository {
	return &OTPRedisRepository{
		client: client,
	}
}

// Store saves the code for a phone number with the configured TTL.
func (r *OTPRedisRepository) Store(ctx context.Context, phoneNumber, code string) error {
	if err := r.client.Set(ctx, redisclient.KeyOTP+phoneNumber, code, redisclient.TTLOTP).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	return nil
}

// Get returns the stored code, or "" when absent or expired.
func (r *OTPRedisRepository) Get(ctx context.Context, phoneNumber string) (string, error) {
	code, err := r.client.Get(ctx, redisclient.KeyOTP+phoneNumber).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}

		return "", fmt.Errorf("failed to get otp: %w", err)
	}

	return code, nil
}

// Delete removes a consumed code.
func (r *OTPRedisRepository) Delete(ctx context.Context, phoneNumber string) error {
	if err := r.client.Del(ctx, redisclient.KeyOTP+phoneNumber).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}

	return nil
}
