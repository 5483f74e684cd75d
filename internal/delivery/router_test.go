package delivery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (r *recordingTransport) Deliver(_ context.Context, dest string, _ reminder.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, dest)
	return nil
}

func TestRouter_Send(t *testing.T) {
	r := NewRouter()
	email := &recordingTransport{}
	r.Register(models.ChannelEmail, email, 0)

	require.NoError(t, r.Send(context.Background(), models.ChannelEmail, "a@example.com", reminder.Message{Type: models.ReminderPlan}))
	assert.Equal(t, []string{"a@example.com"}, email.sent)
}

func TestRouter_UnknownChannel(t *testing.T) {
	err := NewRouter().Send(context.Background(), models.ChannelPush, "u1", reminder.Message{})

	var delErr *reminder.DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.Equal(t, models.ChannelPush, delErr.Channel)
}

func TestRouter_WrapsTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewRouter()
	r.Register(models.ChannelEmail, &recordingTransport{err: boom}, 0)

	err := r.Send(context.Background(), models.ChannelEmail, "a@example.com", reminder.Message{})

	var delErr *reminder.DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.ErrorIs(t, err, boom)
}

func TestRouter_RateLimitHonoursContext(t *testing.T) {
	r := NewRouter()
	r.Register(models.ChannelEmail, &recordingTransport{}, 1)

	// The single burst token is used by the first send.
	require.NoError(t, r.Send(context.Background(), models.ChannelEmail, "a@example.com", reminder.Message{}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.Send(ctx, models.ChannelEmail, "a@example.com", reminder.Message{})
	assert.Error(t, err)
}
