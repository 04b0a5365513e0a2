package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	sessionTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		sessionTTL: sessionTTL,
	}
}

// ResetSessions drops every stored session. Called once at process startup so
// that no session issued by a previous process stays valid.
func (c *RedisCache) ResetSessions(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "session:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) CreateSession(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := c.client.Set(ctx, sessionKey(token), username, c.sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (c *RedisCache) GetSession(ctx context.Context, token string) (string, error) {
	username, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return username, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func (c *RedisCache) GetFlightSearch(ctx context.Context, source, destination, date string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightSearchKey(source, destination, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlightSearch(ctx context.Context, source, destination, date string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightSearchKey(source, destination, date), payload, c.flightsTTL).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}

func flightSearchKey(source, destination, date string) string {
	return fmt.Sprintf("cache:flights:%s:%s:%s", source, destination, date)
}
