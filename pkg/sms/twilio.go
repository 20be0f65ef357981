package sms

import (
	"context"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioProvider struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioProvider(accountSID, authToken, fromNumber string) *TwilioProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioProvider{
		client:     client,
		fromNumber: fromNumber,
	}
}

func (t *TwilioProvider) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	params := &api.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(t.senderFor(msg))
	params.SetBody(msg.Body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return &Receipt{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &Receipt{
		MessageID: *resp.Sid,
		Status:    string(*resp.Status),
	}, nil
}

func (t *TwilioProvider) SendBatch(ctx context.Context, msgs []*Message) ([]*Receipt, error) {
	receipts := make([]*Receipt, len(msgs))

	for i, msg := range msgs {
		receipt, err := t.Send(ctx, msg)
		if err != nil {
			receipt = &Receipt{
				Status: "failed",
				Error:  err.Error(),
			}
		}
		receipts[i] = receipt
	}

	return receipts, nil
}

func (t *TwilioProvider) senderFor(msg *Message) string {
	if msg.From != "" {
		return msg.From
	}
	return t.fromNumber
}
