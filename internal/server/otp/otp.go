// Package otp keeps one-time email verification codes in Redis.
//
// A code is stored bcrypt-hashed in a hash key together with the number of
// wrong guesses so far. The key expires after the configured validity, and
// reaching the attempt limit burns the code.
package otp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

const (
	keyPrefix     = "otp:"
	fieldHash     = "hash"
	fieldAttempts = "attempts"
)

// hashCost is a test seam.
var hashCost = bcrypt.DefaultCost

// Store issues and checks verification codes per email address.
type Store interface {
	// Issue replaces any previous code for email and returns the new one.
	Issue(ctx context.Context, email string) (string, error)
	// Verify consumes the code on success. It returns common.ErrInvalidOTP,
	// common.ErrTooManyAttempts or common.ErrOTPExpired otherwise.
	Verify(ctx context.Context, email, code string) error
	Clear(ctx context.Context, email string) error
}

// failAttempt bumps the attempt counter only while the code still exists,
// so a late wrong guess cannot resurrect an expired key without a TTL.
var failAttempt = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
end
return -1
`)

type RedisStore struct {
	client      redis.Cmdable
	ttl         time.Duration
	maxAttempts int
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration, maxAttempts int) *RedisStore {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RedisStore{client: client, ttl: ttl, maxAttempts: maxAttempts}
}

// NewRedisClient returns a go-redis client for redisURL
// (e.g. redis://localhost:6379/0) after checking it answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func key(email string) string {
	return keyPrefix + email
}

func (s *RedisStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := common.MakeRandDigits(CodeLength)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	k := key(email)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, k)
		p.HSet(ctx, k, fieldHash, hash, fieldAttempts, 0)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Verify(ctx context.Context, email, code string) error {
	k := key(email)

	vals, err := s.client.HGetAll(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	hash, ok := vals[fieldHash]
	if !ok {
		return common.ErrOTPExpired
	}

	attempts, _ := strconv.Atoi(vals[fieldAttempts])
	if attempts >= s.maxAttempts {
		_ = s.Clear(ctx, email)
		return common.ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil {
		return s.Clear(ctx, email)
	}

	n, err := failAttempt.Run(ctx, s.client, []string{k}, fieldAttempts).Int()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	switch {
	case n < 0:
		return common.ErrOTPExpired
	case n >= s.maxAttempts:
		_ = s.Clear(ctx, email)
		return common.ErrTooManyAttempts
	}
	return common.ErrInvalidOTP
}

func (s *RedisStore) Clear(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
