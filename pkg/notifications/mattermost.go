package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/sirupsen/logrus"
)

// MattermostProvider posts to a Mattermost incoming webhook
type MattermostProvider struct {
	WebhookURL string
	Username   string
	IconURL    string

	Client *http.Client
}

type mattermostMessage struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
	IconURL  string `json:"icon_url,omitempty"`
}

func (m *MattermostProvider) Dispatch(ctx context.Context, msg *notifier.Message) error {
	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(mattermostMessage{
		Channel:  msg.Channel,
		Text:     msg.Text,
		Username: m.Username,
		IconURL:  m.IconURL,
	})
	if err != nil {
		return fmt.Errorf("cannot encode mattermost message: %s", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.WebhookURL, b)
	if err != nil {
		return fmt.Errorf("cannot create mattermost request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := httpClient(m.Client).Do(req)
	if err != nil {
		return fmt.Errorf("could not post to mattermost: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		logrus.Debugf("Mattermost response: %s", string(body))
		return fmt.Errorf("could not post to mattermost, status: %d", res.StatusCode)
	}

	return nil
}

func httpClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return http.DefaultClient
}
