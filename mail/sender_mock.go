package mail

import (
	"context"
	"errors"
	"sync"
)

type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// SenderMock records sent mail and can fail the first FailFirst attempts to
// simulate a transiently unavailable relay.
type SenderMock struct {
	mock sync.Mutex

	// FailFirst is how many initial Send calls return an error.
	FailFirst int

	attempts int
	sent     []SentMessage
}

func (m *SenderMock) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.attempts++
	if m.attempts <= m.FailFirst {
		return errors.New("smtp relay unavailable")
	}

	m.sent = append(m.sent, SentMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *SenderMock) Attempts() int {
	m.mock.Lock()
	defer m.mock.Unlock()

	return m.attempts
}

func (m *SenderMock) Sent() []SentMessage {
	m.mock.Lock()
	defer m.mock.Unlock()

	return append([]SentMessage(nil), m.sent...)
}
