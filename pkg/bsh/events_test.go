package bsh_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

type publishedMessage struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.messages = append(f.messages, publishedMessage{subject: subject, data: data})

	return nil
}

func TestEventPublisher_PublishesOutcomes(t *testing.T) {
	pub := &fakePublisher{}
	events := bsh.NewEventPublisher(pub, "", nil)
	ctx := context.Background()

	req := &bsh.Request{Method: "GET", Path: "https://h/api/users/me", OperationName: "user.me"}

	assert.Nil(t, events.PostInterceptor()(ctx, &bsh.Envelope{Code: 200, OperationName: "user.me"}, req))
	assert.Nil(t, events.ErrorInterceptor()(ctx, bsh.NewError(401, req.Path, nil), nil, req))

	require.Len(t, pub.messages, 2)
	assert.Equal(t, "bsh.client.calls.success", pub.messages[0].subject)
	assert.Equal(t, "bsh.client.calls.error", pub.messages[1].subject)

	var event bsh.CallEvent
	require.NoError(t, json.Unmarshal(pub.messages[1].data, &event))
	assert.Equal(t, "user.me", event.Operation)
	assert.Equal(t, 401, event.Code)
	assert.Equal(t, "https://h/api/users/me", event.Endpoint)
	assert.Equal(t, bsh.OutcomeError, event.Outcome)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestEventPublisher_PublishFailureIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errDial}
	logger := &recordingLogger{}
	events := bsh.NewEventPublisher(pub, "audit", logger)

	out := events.PostInterceptor()(context.Background(), &bsh.Envelope{Code: 200}, &bsh.Request{})

	assert.Nil(t, out)
	assert.Equal(t, []string{"warn:failed to publish call event"}, logger.entries)
}
