package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/database"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Emails is the list consumed by the notification worker.
const Emails = "queue:emails"

// SchemaVersion is stamped on every envelope. Consumers reject versions they
// do not understand instead of guessing at the payload.
const SchemaVersion = 1

var (
	ErrUnavailable = errors.New("job queue is not configured")
	ErrMalformed   = errors.New("malformed job envelope")
)

type Envelope struct {
	ID         string          `json:"id"`
	Version    int             `json:"version"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Decode unmarshals the payload into dst.
func (e Envelope) Decode(dst interface{}) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Enqueue pushes a job onto queue. Jobs are taken from the other end, so the
// list is FIFO.
func Enqueue(ctx context.Context, queue, jobType string, payload interface{}) (Envelope, error) {
	if database.Rdb == nil {
		return Envelope{}, ErrUnavailable
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", jobType, err)
	}

	env := Envelope{
		ID:         uuid.NewString(),
		Version:    SchemaVersion,
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode envelope: %w", err)
	}

	if err := database.Rdb.LPush(ctx, queue, b).Err(); err != nil {
		return Envelope{}, fmt.Errorf("push %s: %w", jobType, err)
	}
	return env, nil
}

// Dequeue blocks up to timeout for the next job. It returns (nil, nil) when
// the wait times out. A popped job that cannot be decoded is gone from the
// queue; the error wraps ErrMalformed.
func Dequeue(ctx context.Context, queue string, timeout time.Duration) (*Envelope, error) {
	if database.Rdb == nil {
		return nil, ErrUnavailable
	}

	res, err := database.Rdb.BRPop(ctx, timeout, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("%w: unexpected reply %v", ErrMalformed, res)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &env, nil
}

// Len reports the number of pending jobs.
func Len(ctx context.Context, queue string) (int64, error) {
	if database.Rdb == nil {
		return 0, ErrUnavailable
	}
	return database.Rdb.LLen(ctx, queue).Result()
}
