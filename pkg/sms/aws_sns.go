package sms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type AWSSNSProvider struct {
	client *sns.Client
	region string
}

func NewAWSSNSProvider(region string) (*AWSSNSProvider, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSNSProvider{
		client: sns.NewFromConfig(cfg),
		region: region,
	}, nil
}

func (a *AWSSNSProvider) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(msg.To),
		Message:     aws.String(msg.Body),
		MessageAttributes: map[string]snsTypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(smsTypeFor(msg.Category)),
			},
		},
	}

	resp, err := a.client.Publish(ctx, input)
	if err != nil {
		return &Receipt{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &Receipt{
		MessageID: *resp.MessageId,
		Status:    "sent",
	}, nil
}

func (a *AWSSNSProvider) SendBatch(ctx context.Context, msgs []*Message) ([]*Receipt, error) {
	receipts := make([]*Receipt, len(msgs))

	for i, msg := range msgs {
		receipt, err := a.Send(ctx, msg)
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

func smsTypeFor(category string) string {
	switch category {
	case "promotional":
		return "Promotional"
	default:
		return "Transactional"
	}
}
