package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingAcknowledger captures how a delivery was settled.
type recordingAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (r *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	r.acked = true
	return nil
}

func (r *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	r.nacked = true
	r.requeue = requeue
	return nil
}

func (r *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return r.Nack(tag, false, requeue)
}

func delivery(t *testing.T, ack *recordingAcknowledger, body any, redelivered bool) amqp.Delivery {
	t.Helper()
	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, Body: raw, DeliveryTag: 1, Redelivered: redelivered}
}

func TestHandle_AcksProcessedEvents(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	ack := &recordingAcknowledger{}
	event := ProfileEvent{Type: "profile.created", Kind: "sellers", ID: "abc", CreatedAt: time.Unix(0, 0).UTC()}

	var got ProfileEvent
	c.handle(delivery(t, ack, event, false), func(e ProfileEvent) error {
		got = e
		return nil
	})

	assert.True(t, ack.acked)
	assert.Equal(t, event, got)
}

func TestHandle_RequeuesFirstFailureOnly(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	failing := func(ProfileEvent) error { return errors.New("boom") }

	first := &recordingAcknowledger{}
	c.handle(delivery(t, first, ProfileEvent{ID: "1"}, false), failing)
	assert.True(t, first.nacked)
	assert.True(t, first.requeue)

	second := &recordingAcknowledger{}
	c.handle(delivery(t, second, ProfileEvent{ID: "1"}, true), failing)
	assert.True(t, second.nacked)
	assert.False(t, second.requeue)
}

func TestHandle_DropsGarbage(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	ack := &recordingAcknowledger{}
	called := false

	c.handle(delivery(t, ack, []byte("not json"), false), func(ProfileEvent) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestPublishWithoutChannel(t *testing.T) {
	c := &Client{logger: zap.NewNop()}
	assert.Error(t, c.PublishProfileCreated(ProfileEvent{ID: "x"}))
}
