package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmail(t *testing.T) {
	c := NewClient(Config{Host: "smtp.example.com", Port: "587", Password: "pw", Sender: "noreply@example.com"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	c.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, c.SendEmail("mina@example.com", "Time to plan", "hello"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"mina@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Time to plan\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nhello\r\n")
}

func TestSendEmail_Errors(t *testing.T) {
	assert.Error(t, NewClient(Config{}).SendEmail("a@example.com", "s", "b"))

	c := NewClient(Config{Host: "smtp.example.com", Port: "25"})
	boom := errors.New("421 service not available")
	c.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	assert.ErrorIs(t, c.SendEmail("a@example.com", "s", "b"), boom)
}
