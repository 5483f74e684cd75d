package delivery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNoSubscriber = errors.New("no open push connection for user")

const writeWait = 10 * time.Second

// PushPayload is what a connected client receives.
type PushPayload struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
	SentAt string `json:"sent_at"`
}

type pushConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *pushConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// PushHub keeps the open websocket connections per user and delivers
// reminders to them.
type PushHub struct {
	mu    sync.RWMutex
	conns map[string]map[*pushConn]struct{} // userID -> conns
}

func NewPushHub() *PushHub {
	return &PushHub{conns: make(map[string]map[*pushConn]struct{})}
}

// Attach registers conn for userID and returns a func that detaches it.
func (h *PushHub) Attach(userID string, conn *websocket.Conn) func() {
	pc := &pushConn{conn: conn}

	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*pushConn]struct{})
	}
	h.conns[userID][pc] = struct{}{}
	h.mu.Unlock()

	logrus.WithField("userID", userID).Info("Push subscriber connected")

	return func() {
		h.mu.Lock()
		delete(h.conns[userID], pc)
		if len(h.conns[userID]) == 0 {
			delete(h.conns, userID)
		}
		h.mu.Unlock()
		logrus.WithField("userID", userID).Info("Push subscriber disconnected")
	}
}

// Connected reports how many connections userID has open.
func (h *PushHub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Deliver writes msg to every connection of userID. It succeeds if at least
// one write succeeds.
func (h *PushHub) Deliver(ctx context.Context, userID string, msg reminder.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*pushConn, 0, len(h.conns[userID]))
	for pc := range h.conns[userID] {
		targets = append(targets, pc)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return ErrNoSubscriber
	}

	payload := PushPayload{
		Type:   string(msg.Type),
		Title:  msg.Subject,
		Body:   msg.Body,
		URL:    msg.URL,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	}

	var lastErr error
	delivered := 0
	for _, pc := range targets {
		if err := pc.writeJSON(payload); err != nil {
			lastErr = err
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return lastErr
	}
	return nil
}
