package email

import (
	"fmt"
	"net/smtp"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// Client sends plain text emails over SMTP.
type Client struct {
	cfg      Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewClient(cfg Config) *Client {
	if cfg.Username == "" {
		cfg.Username = cfg.Sender
	}
	return &Client{cfg: cfg, sendMail: smtp.SendMail}
}

// SendEmail sends a plain text email using SMTP.
func (c *Client) SendEmail(to, subject, body string) error {
	if c.cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)

	msg := []byte("From: " + c.cfg.Sender + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body + "\r\n")

	address := c.cfg.Host + ":" + c.cfg.Port

	err := c.sendMail(address, auth, c.cfg.Sender, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
