package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Client sends mail through an SMTP relay.
type Client struct {
	client *gomail.Client
	from   string
}

func NewClient(host string, port int, username, password, from string) (*Client, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create smtp client: %w", err)
	}

	return &Client{
		client: client,
		from:   from,
	}, nil
}

func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}
	return nil
}
