package notifications

import (
	"fmt"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
)

const (
	ProviderMattermost = "mattermost"
	ProviderSlack      = "slack"
	ProviderDiscord    = "discord"
)

type Options struct {
	Provider string

	MattermostWebhookURL string
	MattermostUsername   string
	MattermostIconURL    string

	// Token is the Slack or Discord bot token
	Token          string
	ChannelMapping map[string]string
}

// NewDispatcher picks the chat provider messages are sent with
func NewDispatcher(opts Options) (notifier.Dispatcher, error) {
	switch opts.Provider {
	case ProviderMattermost, "":
		if opts.MattermostWebhookURL == "" {
			return nil, fmt.Errorf("mattermost webhook url must be provided")
		}
		return &MattermostProvider{
			WebhookURL: opts.MattermostWebhookURL,
			Username:   opts.MattermostUsername,
			IconURL:    opts.MattermostIconURL,
		}, nil
	case ProviderSlack:
		if opts.Token == "" {
			return nil, fmt.Errorf("slack token must be provided")
		}
		return &SlackProvider{Token: opts.Token}, nil
	case ProviderDiscord:
		if opts.Token == "" {
			return nil, fmt.Errorf("discord token must be provided")
		}
		return NewDiscordProvider(opts.Token, opts.ChannelMapping)
	}

	return nil, fmt.Errorf("unknown notifications provider %q", opts.Provider)
}
