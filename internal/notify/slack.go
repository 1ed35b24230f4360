package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Slack posts to an incoming-webhook URL. NewSlack returns nil when no
// webhook is configured, which Multi skips.
type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackAttachment struct {
	Color string `json:"color"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type slackPayload struct {
	Attachments []slackAttachment `json:"attachments"`
}

func (s *Slack) Send(ctx context.Context, n Notice) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	color := "danger"
	if n.Recovered {
		color = "good"
	}
	body, _ := json.Marshal(slackPayload{Attachments: []slackAttachment{{
		Color: color,
		Title: n.Title(),
		Text: fmt.Sprintf("HTTP: %s\nPing: %s\nChecked: %s",
			n.HTTP, n.Ping, n.CheckedAt.Format(time.RFC3339)),
	}}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("slack non-2xx")
	}
	return nil
}
