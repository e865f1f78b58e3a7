package publish

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/logfields"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/retry"
)

// DefaultTimeout bounds a single publish.
const DefaultTimeout = 5 * time.Second

// Publisher announces run results.
type Publisher interface {
	Publish(ctx context.Context, r *report.Report) error
	Close() error
}

// NoopPublisher discards results (default when publishing is not configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *report.Report) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

// streamPublisher is the subset of jetstream.JetStream used for publishing.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSPublisher publishes report events to a JetStream subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      streamPublisher
	subject string
	timeout time.Duration
	retry   retry.Policy
	now     func() time.Time
}

// Options configure a NATSPublisher.
type Options struct {
	URL     string
	Subject string
	// Timeout bounds each attempt.
	Timeout time.Duration
	// Retry applies to publish calls; the zero Policy publishes once.
	Retry retry.Policy
}

// NewNATSPublisher connects to NATS and makes sure a stream captures subject.
func NewNATSPublisher(ctx context.Context, opts Options) (*NATSPublisher, error) {
	conn, err := nats.Connect(opts.URL, nats.Name("sitelint"))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryPublish, "failed to connect to NATS").
			WithContext("url", opts.URL).
			Build()
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, errors.WrapError(err, errors.CategoryPublish, "failed to create JetStream context").Build()
	}

	if err := ensureStream(ctx, js, opts.Subject); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("NATS publisher initialized",
		slog.String("url", opts.URL),
		slog.String("subject", opts.Subject))

	return newPublisher(conn, js, opts), nil
}

func newPublisher(conn *nats.Conn, js streamPublisher, opts Options) *NATSPublisher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NATSPublisher{conn: conn, js: js, subject: opts.Subject, timeout: timeout, retry: opts.Retry, now: time.Now}
}

// StreamName derives the stream name for subject.
func StreamName(subject string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "*", "ANY", ">", "ALL").Replace(subject))
}

func ensureStream(ctx context.Context, js jetstream.JetStream, subject string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	name := StreamName(subject)
	if _, err := js.Stream(ctx, name); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        name,
		Description: "sitelint validation reports",
		Subjects:    []string{subject},
		MaxMsgs:     10_000,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryPublish, "failed to create report stream").
			WithContext("stream", name).
			Build()
	}
	slog.Info("Created report stream", slog.String("stream", name))
	return nil
}

// Publish sends the summary of r. Retried attempts carry the same message id
// so the stream deduplicates them.
func (p *NATSPublisher) Publish(ctx context.Context, r *report.Report) error {
	event := NewReportEvent(r)
	event.Timestamp = p.now()

	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal report event").Build()
	}

	var pubOpts []jetstream.PublishOpt
	if event.RunID != "" {
		pubOpts = append(pubOpts, jetstream.WithMsgID(event.RunID))
	}
	attempts := 0
	err = retry.Do(ctx, p.retry, func(attempt int) error {
		attempts = attempt + 1
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		_, pubErr := p.js.Publish(attemptCtx, p.subject, data, pubOpts...)
		if pubErr != nil {
			slog.Debug("Publish attempt failed", slog.Int("attempt", attempts), logfields.Error(pubErr))
		}
		return pubErr
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryPublish, "failed to publish report event").
			Warning().
			WithContext("subject", p.subject).
			WithContext("attempts", attempts).
			Build()
	}

	slog.Debug("Published report event",
		logfields.RunID(event.RunID),
		slog.String("subject", p.subject),
		logfields.Errors(event.Errors),
		logfields.Warnings(event.Warnings))
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
