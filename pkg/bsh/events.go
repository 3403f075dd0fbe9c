package bsh

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// Publisher is the subset of *nats.Conn used to emit call events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// CallEvent is published for every completed engine call.
type CallEvent struct {
	Operation  string    `json:"operation"`
	Method     string    `json:"method"`
	Endpoint   string    `json:"endpoint"`
	Outcome    string    `json:"outcome"`
	Code       int       `json:"code"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes call outcomes to "<subject>.success" and
// "<subject>.error". Publish failures are logged and never affect the call.
type EventPublisher struct {
	publisher Publisher
	subject   string
	logger    Logger
	now       func() time.Time
}

// NewEventPublisher wraps an existing publisher. An empty subject uses the
// default prefix.
func NewEventPublisher(publisher Publisher, subject string, logger Logger) *EventPublisher {
	if subject == "" {
		subject = constants.DefaultEventsSubject
	}

	return &EventPublisher{
		publisher: publisher,
		subject:   subject,
		logger:    LoggerOrNoop(logger),
		now:       time.Now,
	}
}

// ConnectEventPublisher dials a NATS server. The returned func drains and
// closes the connection.
func ConnectEventPublisher(url, subject string, logger Logger) (*EventPublisher, func(), error) {
	conn, err := nats.Connect(url, nats.Name("bshengine-client"))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	closeFn := func() {
		_ = conn.Drain()
	}

	return NewEventPublisher(conn, subject, logger), closeFn, nil
}

// PostInterceptor publishes successful calls.
func (p *EventPublisher) PostInterceptor() PostInterceptor {
	return func(_ context.Context, env *Envelope, req *Request) *Envelope {
		p.publish(CallEvent{
			Operation: env.OperationName,
			Method:    req.Method,
			Endpoint:  req.Path,
			Outcome:   OutcomeSuccess,
			Code:      env.Code,
		})

		return nil
	}
}

// ErrorInterceptor publishes failed calls.
func (p *EventPublisher) ErrorInterceptor() ErrorInterceptor {
	return func(_ context.Context, err *Error, _ *Envelope, req *Request) *Error {
		p.publish(CallEvent{
			Operation: req.OperationName,
			Method:    req.Method,
			Endpoint:  err.Endpoint,
			Outcome:   OutcomeError,
			Code:      err.StatusCode,
			Error:     err.Error(),
		})

		return nil
	}
}

func (p *EventPublisher) publish(event CallEvent) {
	event.OccurredAt = p.now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("failed to encode call event", map[string]interface{}{"error": err.Error()})

		return
	}

	subject := p.subject + "." + event.Outcome

	err = p.publisher.Publish(subject, data)
	if err != nil {
		p.logger.Warn("failed to publish call event", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}
