package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

type fakeChannel struct {
	declared   []string
	durable    []bool
	published  map[string][]amqp.Publishing
	publishErr error
	declareErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{published: make(map[string][]amqp.Publishing)}
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if c.declareErr != nil {
		return amqp.Queue{}, c.declareErr
	}
	c.declared = append(c.declared, name)
	c.durable = append(c.durable, durable)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published[key] = append(c.published[key], msg)
	return nil
}

func (c *fakeChannel) Close() error { return nil }

func TestNewPublisher_DeclaresDurableQueues(t *testing.T) {
	ch := newFakeChannel()
	_, err := NewPublisher(ch, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{QueueReservationCreated, QueueReservationCancelled}, ch.declared)
	assert.Equal(t, []bool{true, true}, ch.durable)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := newFakeChannel()
	ch.declareErr = errors.New("access refused")

	_, err := NewPublisher(ch, logger.Discard())
	assert.ErrorIs(t, err, ErrDeclareQueue)
}

func TestPublishReservationCreated(t *testing.T) {
	ch := newFakeChannel()
	p, err := NewPublisher(ch, logger.Discard())
	require.NoError(t, err)

	res := &domain.Reservation{
		ID:         7,
		RoomNumber: "101",
		Stay: domain.StayRange{
			CheckIn:  types.MustParseDate("2025-09-10"),
			CheckOut: types.MustParseDate("2025-09-12"),
		},
		Adults:      2,
		Status:      domain.StatusConfirmed,
		TotalAmount: decimal.RequireFromString("4000"),
	}

	require.NoError(t, p.PublishReservationCreated(context.Background(), NewReservationCreatedEvent(res)))

	msgs := ch.published[QueueReservationCreated]
	require.Len(t, msgs, 1)
	assert.Equal(t, amqp.Persistent, msgs[0].DeliveryMode)
	assert.Equal(t, "application/json", msgs[0].ContentType)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msgs[0].Body, &body))
	assert.Equal(t, float64(7), body["reservation_id"])
	assert.Equal(t, "2025-09-10", body["check_in"])
	assert.Equal(t, "4000", body["total_amount"])
}

func TestPublishReservationCancelled_Error(t *testing.T) {
	ch := newFakeChannel()
	p, err := NewPublisher(ch, logger.Discard())
	require.NoError(t, err)

	ch.publishErr = errors.New("channel closed")
	err = p.PublishReservationCancelled(context.Background(), ReservationCancelledEvent{ReservationID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}
