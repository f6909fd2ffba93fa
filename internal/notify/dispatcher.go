// Package notify renders portal emails and hands them to a delivery transport.
// Delivery is single-attempt; callers treat failures as non-fatal.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Message is one outbound email
type Message struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

// Dispatcher delivers a rendered message
type Dispatcher interface {
	Send(ctx context.Context, msg *Message) error
}

// listPusher is the part of redis.Cmdable the outbox needs
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisMailer appends messages as JSON to a Redis list drained by the mail relay
type RedisMailer struct {
	client listPusher
	key    string
}

func NewRedisMailer(client redis.Cmdable, key string) *RedisMailer {
	return &RedisMailer{client: client, key: key}
}

func (m *RedisMailer) Send(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if err := m.client.RPush(ctx, m.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue message: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of delivering them
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg *Message) error {
	m.logger.Info("Email",
		zap.String("kind", msg.Kind),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
