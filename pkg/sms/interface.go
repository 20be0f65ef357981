package sms

import "context"

// Provider sends transactional SMS messages such as booking confirmations.
type Provider interface {
	Send(ctx context.Context, msg *Message) (*Receipt, error)
	SendBatch(ctx context.Context, msgs []*Message) ([]*Receipt, error)
}

type Message struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Body     string `json:"body"`
	Category string `json:"category"` // transactional, promotional
}

type Receipt struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
