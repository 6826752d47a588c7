// Package line delivers quiz reminders over the LINE Messaging API and handles its webhook.
package line

import (
	"context"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

//go:generate mockgen -source=client.go -destination=../../mocks/line/mock_client.go -package=mock_line

// API is the part of the Messaging API used by memoquiz.
type API interface {
	PushMessage(ctx context.Context, to string, messages ...linebot.SendingMessage) error
	ReplyMessage(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error
	GetProfile(ctx context.Context, userID string) (*linebot.UserProfileResponse, error)
	ParseRequest(req *http.Request) ([]*linebot.Event, error)
}

type Client struct {
	client *linebot.Client
}

func NewClient(channelSecret, channelToken string, options ...linebot.ClientOption) (*Client, error) {
	client, err := linebot.New(channelSecret, channelToken, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create line bot client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) PushMessage(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	if _, err := c.client.PushMessage(to, messages...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("client.PushMessage() > %w", err)
	}
	return nil
}

func (c *Client) ReplyMessage(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	if _, err := c.client.ReplyMessage(replyToken, messages...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("client.ReplyMessage() > %w", err)
	}
	return nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*linebot.UserProfileResponse, error) {
	profile, err := c.client.GetProfile(userID).WithContext(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("client.GetProfile() > %w", err)
	}
	return profile, nil
}

// ParseRequest verifies the X-Line-Signature header and decodes the webhook events.
func (c *Client) ParseRequest(req *http.Request) ([]*linebot.Event, error) {
	return c.client.ParseRequest(req)
}
