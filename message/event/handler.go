package event

import "context"

// MailSender is the external mail collaborator: fallible, side-effecting once
// per successful call, no internal retry.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Handler struct {
	mailSender MailSender
}

func NewHandler(mailSender MailSender) Handler {
	if mailSender == nil {
		panic("missing mail sender")
	}
	return Handler{
		mailSender: mailSender,
	}
}
