package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dauletnazarr/donation-project/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := database.Rdb
	database.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.Rdb.Close()
		database.Rdb = prev
	})
	return mr
}

type greeting struct {
	To string `json:"to"`
}

func TestEnqueueDequeueFIFO(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	first, err := Enqueue(ctx, Emails, "greet", greeting{To: "a@example.com"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := Enqueue(ctx, Emails, "greet", greeting{To: "b@example.com"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if first.Version != SchemaVersion || first.ID == "" {
		t.Fatalf("envelope not stamped: %+v", first)
	}

	n, err := Len(ctx, Emails)
	if err != nil || n != 2 {
		t.Fatalf("len = %d, %v; want 2", n, err)
	}

	env, err := Dequeue(ctx, Emails, time.Second)
	if err != nil || env == nil {
		t.Fatalf("dequeue: %v %v", env, err)
	}
	var g greeting
	if err := env.Decode(&g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.To != "a@example.com" || env.ID != first.ID {
		t.Fatalf("expected first job out first, got %+v", g)
	}
}

func TestDequeueTimeout(t *testing.T) {
	useMiniredis(t)

	env, err := Dequeue(context.Background(), Emails, time.Second)
	if err != nil {
		t.Fatalf("timeout should not be an error: %v", err)
	}
	if env != nil {
		t.Fatalf("expected no job, got %+v", env)
	}
}

func TestDequeueMalformed(t *testing.T) {
	mr := useMiniredis(t)
	mr.Lpush(Emails, "not json")

	_, err := Dequeue(context.Background(), Emails, time.Second)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
	if mr.Exists(Emails) {
		t.Fatal("malformed job should have been consumed")
	}
}

func TestUnavailable(t *testing.T) {
	prev := database.Rdb
	database.Rdb = nil
	defer func() { database.Rdb = prev }()

	if _, err := Enqueue(context.Background(), Emails, "greet", greeting{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v", err)
	}
}
