package notifications

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
)

// DiscordProvider sends as a bot. Channel names are mapped to channel IDs,
// names missing from the mapping are used as IDs.
type DiscordProvider struct {
	Token          string
	ChannelMapping map[string]string

	session *discordgo.Session
}

func NewDiscordProvider(token string, channelMapping map[string]string) (*DiscordProvider, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session, %s", err)
	}

	return &DiscordProvider{
		Token:          token,
		ChannelMapping: channelMapping,
		session:        session,
	}, nil
}

func (d *DiscordProvider) channelID(channel string) string {
	if id, ok := d.ChannelMapping[channel]; ok {
		return id
	}
	return channel
}

func (d *DiscordProvider) Dispatch(ctx context.Context, msg *notifier.Message) error {
	_, err := d.session.ChannelMessageSend(d.channelID(msg.Channel), msg.Text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("could not post to discord: %w", err)
	}
	return nil
}
