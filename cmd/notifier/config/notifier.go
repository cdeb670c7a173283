package config

import (
	"time"

	"github.com/gimlet-io/project-notifier/pkg/git/customGithub"
	"github.com/gimlet-io/project-notifier/pkg/notifications"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
)

// TokenProvider prefers Github app credentials over a static token
func (c *Config) TokenProvider() (customGithub.TokenProvider, error) {
	if !c.IsGithubApp() {
		return customGithub.StaticToken(c.Github.Token), nil
	}

	installationID, err := c.InstallationID()
	if err != nil {
		return nil, err
	}
	return customGithub.NewAppTokenManager(
		c.Github.AppID,
		c.Github.PrivateKey.String(),
		installationID,
		c.Github.APIURL,
	)
}

// Notifier wires the Github content lookup and the chat provider
func (c *Config) Notifier() (*notifier.Notifier, error) {
	channels, err := c.Channels()
	if err != nil {
		return nil, err
	}

	tokens, err := c.TokenProvider()
	if err != nil {
		return nil, err
	}
	resolver := customGithub.NewContentResolver(tokens, c.Github.GraphQLURL)

	opts, err := c.NotificationOptions()
	if err != nil {
		return nil, err
	}
	dispatcher, err := notifications.NewDispatcher(opts)
	if err != nil {
		return nil, err
	}

	return notifier.NewNotifier(channels, resolver, dispatcher).
		WithTimeout(time.Duration(c.NotifyTimeoutSeconds) * time.Second), nil
}
