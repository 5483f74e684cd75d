// Package delivery routes rendered reminders to channel transports.
package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/metrics"
	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"golang.org/x/time/rate"
)

// Transport sends one message to one destination over a single channel.
type Transport interface {
	Deliver(ctx context.Context, destination string, msg reminder.Message) error
}

type route struct {
	transport Transport
	limiter   *rate.Limiter
}

// Router implements the scheduler's delivery adapter on top of registered
// transports. Each channel has its own rate limit.
type Router struct {
	mu     sync.RWMutex
	routes map[models.Channel]route
}

func NewRouter() *Router {
	return &Router{routes: make(map[models.Channel]route)}
}

// Register installs t for ch. perMinute <= 0 disables rate limiting.
func (r *Router) Register(ch models.Channel, t Transport, perMinute int) {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
		burst = max(1, perMinute/10)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[ch] = route{transport: t, limiter: rate.NewLimiter(limit, burst)}
}

// Send waits for the channel's rate limiter and delivers msg. Every failure
// is returned as a *reminder.DeliveryError.
func (r *Router) Send(ctx context.Context, ch models.Channel, destination string, msg reminder.Message) error {
	r.mu.RLock()
	rt, ok := r.routes[ch]
	r.mu.RUnlock()
	if !ok {
		return &reminder.DeliveryError{Channel: ch, Err: fmt.Errorf("no transport registered")}
	}

	if err := rt.limiter.Wait(ctx); err != nil {
		return &reminder.DeliveryError{Channel: ch, Err: fmt.Errorf("rate limit: %w", err)}
	}

	start := time.Now()
	err := rt.transport.Deliver(ctx, destination, msg)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.DeliveryDuration.WithLabelValues(string(ch), status).Observe(time.Since(start).Seconds())

	if err != nil {
		return &reminder.DeliveryError{Channel: ch, Err: err}
	}
	return nil
}
