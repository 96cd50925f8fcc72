package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/infra/mailer"
	"github.com/Dauletnazarr/donation-project/internal/infra/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail error
}

func (s *recordingSender) Send(m mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, m)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

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

func popOne(t *testing.T) queue.Envelope {
	t.Helper()
	env, err := queue.Dequeue(context.Background(), queue.Emails, time.Second)
	if err != nil || env == nil {
		t.Fatalf("expected a queued job, got %v %v", env, err)
	}
	return *env
}

func TestDonationReceivedPayload(t *testing.T) {
	useMiniredis(t)

	DonationReceived(context.Background(), "b@example.com", "a@example.com", decimal.NewFromInt(100), "Birthday")

	env := popOne(t)
	if env.Type != JobDonationReceived {
		t.Fatalf("type = %q", env.Type)
	}
	var p DonationReceivedPayload
	if err := env.Decode(&p); err != nil {
		t.Fatal(err)
	}
	want := DonationReceivedPayload{DonorEmail: "b@example.com", AuthorEmail: "a@example.com", Amount: "100.00", CollectTitle: "Birthday"}
	if p != want {
		t.Fatalf("payload = %+v, want %+v", p, want)
	}
}

func TestEnqueueFailureIsSwallowed(t *testing.T) {
	mr := useMiniredis(t)
	mr.Close()

	// must return without panicking or blocking past the enqueue timeout
	done := make(chan struct{})
	go func() {
		CollectCreated(context.Background(), "a@example.com", "x")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("enqueue blocked")
	}
}

func TestHandleDonationSendsTwoMails(t *testing.T) {
	useMiniredis(t)
	sender := &recordingSender{}
	w := NewWorker(sender, zerolog.Nop())

	DonationReceived(context.Background(), "b@example.com", "a@example.com", decimal.RequireFromString("25.5"), "Wedding")
	if err := w.Handle(popOne(t)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d mails, want 2", len(sender.sent))
	}
	if sender.sent[0].To[0] != "b@example.com" || sender.sent[1].To[0] != "a@example.com" {
		t.Fatalf("unexpected recipients: %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[1].Body, "25.50") {
		t.Fatalf("author body missing amount: %q", sender.sent[1].Body)
	}
}

func TestHandleFailureIsNotRequeued(t *testing.T) {
	useMiniredis(t)
	sender := &recordingSender{fail: errors.New("smtp down")}
	w := NewWorker(sender, zerolog.Nop())

	CollectCreated(context.Background(), "a@example.com", "Party")
	if err := w.Handle(popOne(t)); err == nil {
		t.Fatal("expected delivery error")
	}

	n, _ := queue.Len(context.Background(), queue.Emails)
	if n != 0 {
		t.Fatalf("queue length = %d, want 0", n)
	}
}

func TestHandleRejectsUnknownJobs(t *testing.T) {
	w := NewWorker(&recordingSender{}, zerolog.Nop())

	if err := w.Handle(queue.Envelope{Type: "nope", Version: queue.SchemaVersion}); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("unknown type: got %v", err)
	}
	if err := w.Handle(queue.Envelope{Type: JobCollectCreated, Version: 99, Payload: []byte(`{}`)}); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("unknown version: got %v", err)
	}
}

func TestRunProcessesUntilCancelled(t *testing.T) {
	useMiniredis(t)
	sender := &recordingSender{}
	w := NewWorker(sender, zerolog.Nop())
	w.PollTimeout = time.Second

	CollectCreated(context.Background(), "a@example.com", "Party")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for sender.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	if sender.count() != 1 {
		t.Fatalf("sent %d, want 1", sender.count())
	}
}
