package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/internal/infra/mailer"
	"github.com/Dauletnazarr/donation-project/internal/infra/queue"

	"github.com/rs/zerolog"
)

var ErrUnknownJob = errors.New("unknown job")

// Worker drains the email queue. Each job gets exactly one delivery attempt;
// failures are logged and the job is dropped.
type Worker struct {
	Sender      mailer.Sender
	Queue       string
	PollTimeout time.Duration
	Log         zerolog.Logger
}

func NewWorker(sender mailer.Sender, log zerolog.Logger) *Worker {
	return &Worker{
		Sender:      sender,
		Queue:       queue.Emails,
		PollTimeout: 5 * time.Second,
		Log:         log,
	}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.Log.Info().Str("queue", w.Queue).Msg("worker started")
	for {
		if ctx.Err() != nil {
			w.Log.Info().Msg("worker stopped")
			return nil
		}

		env, err := queue.Dequeue(ctx, w.Queue, w.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			if errors.Is(err, queue.ErrMalformed) {
				w.Log.Error().Err(err).Msg("dropping malformed job")
				continue
			}
			w.Log.Error().Err(err).Msg("dequeue failed")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if env == nil {
			continue
		}

		_ = w.Handle(*env)
	}
}

// Handle delivers a single job and returns the delivery error, which has
// already been logged.
func (w *Worker) Handle(env queue.Envelope) error {
	log := w.Log.With().Str("job", env.Type).Str("id", env.ID).Logger()

	msgs, err := w.messagesFor(env)
	if err != nil {
		log.Error().Err(err).Int("version", env.Version).Msg("dropping job")
		return err
	}

	var errs []error
	for _, m := range msgs {
		if err := w.Sender.Send(m); err != nil {
			log.Error().Err(err).Strs("to", m.To).Msg("email delivery failed")
			errs = append(errs, err)
			continue
		}
		log.Info().Strs("to", m.To).Str("subject", m.Subject).Msg("email sent")
	}
	return errors.Join(errs...)
}

func (w *Worker) messagesFor(env queue.Envelope) ([]mailer.Message, error) {
	if env.Version != queue.SchemaVersion {
		return nil, fmt.Errorf("%w: %s version %d", ErrUnknownJob, env.Type, env.Version)
	}

	switch env.Type {
	case JobCollectCreated:
		var p CollectCreatedPayload
		if err := env.Decode(&p); err != nil {
			return nil, err
		}
		return collectCreatedMessages(p), nil

	case JobDonationReceived:
		var p DonationReceivedPayload
		if err := env.Decode(&p); err != nil {
			return nil, err
		}
		return donationReceivedMessages(p), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, env.Type)
	}
}
