package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	stateKeyPrefix = "odoj:fsm:state:"
	dataKeyPrefix  = "odoj:fsm:data:"
	defaultTTL     = 24 * time.Hour
)

type FSM struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFSM(uri string) (*FSM, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis URI: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &FSM{client: client, ttl: defaultTTL}, nil
}

func (f *FSM) Close() error {
	return f.client.Close()
}

// SetState sets the current state for a user
func (f *FSM) SetState(ctx context.Context, userID string, state domain.State) error {
	return f.client.Set(ctx, stateKey(userID), string(state), f.ttl).Err()
}

// GetState gets the current state for a user
func (f *FSM) GetState(ctx context.Context, userID string) (domain.State, error) {
	val, err := f.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.StateStart, nil
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return domain.State(val), nil
}

// DeleteState deletes the state for a user
func (f *FSM) DeleteState(ctx context.Context, userID string) error {
	return f.client.Del(ctx, stateKey(userID)).Err()
}

// SetData sets temporary data for a user's current session
func (f *FSM) SetData(ctx context.Context, userID, key, value string) error {
	return f.client.Set(ctx, dataKey(userID, key), value, f.ttl).Err()
}

// GetData gets temporary data for a user's current session
func (f *FSM) GetData(ctx context.Context, userID, key string) (string, error) {
	val, err := f.client.Get(ctx, dataKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get data: %w", err)
	}
	return val, nil
}

// DeleteData deletes temporary data for a user
func (f *FSM) DeleteData(ctx context.Context, userID, key string) error {
	return f.client.Del(ctx, dataKey(userID, key)).Err()
}

func stateKey(userID string) string {
	return stateKeyPrefix + userID
}

func dataKey(userID, key string) string {
	return fmt.Sprintf("%s%s:%s", dataKeyPrefix, userID, key)
}
