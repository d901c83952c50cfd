package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch, exchange: "catalogo.audit", log: logger.Nop()}
	actor := int64(7)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), usecase.AuditEvent{
		Entity: "Company", Action: usecase.ActionCreated, ID: 42, ActorID: &actor, At: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "catalogo.audit", ch.exchange)
	assert.Equal(t, "company.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, at, ch.msg.Timestamp)

	var got map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, "Company", got["entity"])
	assert.Equal(t, "created", got["action"])
	assert.EqualValues(t, 42, got["id"])
	assert.EqualValues(t, 7, got["actor_id"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	var buf bytes.Buffer
	ch := &fakeChannel{err: errors.New("canal cerrado")}
	p := &RabbitPublisher{ch: ch, exchange: "x", log: logger.New(logger.Config{Level: "error", Out: &buf})}

	err := p.Publish(context.Background(), usecase.AuditEvent{Entity: "State", Action: usecase.ActionDeleted, ID: 1})
	assert.EqualError(t, err, "canal cerrado")
	assert.Contains(t, buf.String(), "state.deleted")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(logger.New(logger.Config{Level: "info", Out: &buf}))

	require.NoError(t, p.Publish(context.Background(), usecase.AuditEvent{Entity: "Country", Action: usecase.ActionRestored, ID: 3}))
	assert.Contains(t, buf.String(), `"routing_key":"country.restored"`)
	assert.NotContains(t, buf.String(), "actor_id")
}
