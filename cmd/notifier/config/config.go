package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gimlet-io/project-notifier/pkg/notifications"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const redacted = "<redacted>"

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Host == "" && c.Port != "" {
		c.Host = ":" + c.Port
	}
	if c.Host == "" {
		c.Host = ":3000"
	}
	if c.MetricsHost == "" {
		c.MetricsHost = ":9001"
	}
	if c.Notifications.Provider == "" {
		c.Notifications.Provider = notifications.ProviderMattermost
	}
	if c.ProjectChannels == "" {
		c.ProjectChannels = notifier.DefaultProjectChannels().String()
	}
	if c.NotifyTimeoutSeconds == 0 {
		c.NotifyTimeoutSeconds = 10
	}
	if c.WebhookRateLimitPerMin == nil {
		limit := 600
		c.WebhookRateLimitPerMin = &limit
	}
}

// String returns the configuration in string format, secrets redacted.
func (c *Config) String() string {
	safe := *c
	if safe.Github.PrivateKey != "" {
		safe.Github.PrivateKey = redacted
	}
	if safe.Github.Token != "" {
		safe.Github.Token = redacted
	}
	if safe.Github.WebhookSecret != "" {
		safe.Github.WebhookSecret = redacted
	}
	if safe.Notifications.Token != "" {
		safe.Notifications.Token = redacted
	}
	if safe.Notifications.MattermostWebhookURL != "" {
		safe.Notifications.MattermostWebhookURL = redacted
	}

	out, _ := yaml.Marshal(safe)
	return string(out)
}

type Config struct {
	Logging                Logging
	Host                   string `envconfig:"HOST"`
	Port                   string `envconfig:"PORT"`
	MetricsHost            string `envconfig:"METRICS_HOST"`
	Github                 Github
	Notifications          Notifications
	ProjectChannels        string `envconfig:"PROJECT_CHANNELS"`
	NotifyTimeoutSeconds   int    `envconfig:"NOTIFY_TIMEOUT_SECONDS"`
	WebhookRateLimitPerMin *int   `envconfig:"WEBHOOK_RATE_LIMIT_PER_MIN"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug bool `envconfig:"DEBUG"`
	Trace bool `envconfig:"TRACE"`
}

type Github struct {
	AppID          string    `envconfig:"GITHUB_APP_ID"`
	InstallationID string    `envconfig:"GITHUB_INSTALLATION_ID"`
	PrivateKey     Multiline `envconfig:"GITHUB_PRIVATE_KEY"`
	Token          string    `envconfig:"GITHUB_TOKEN"`
	WebhookSecret  string    `envconfig:"GITHUB_WEBHOOK_SECRET"`
	APIURL         string    `envconfig:"GITHUB_API_URL"`
	GraphQLURL     string    `envconfig:"GITHUB_GRAPHQL_URL"`
}

type Notifications struct {
	Provider             string `envconfig:"NOTIFICATIONS_PROVIDER"`
	MattermostWebhookURL string `envconfig:"MATTERMOST_WEBHOOK_URL"`
	MattermostUsername   string `envconfig:"MATTERMOST_USERNAME"`
	MattermostIconURL    string `envconfig:"MATTERMOST_ICON_URL"`
	Token                string `envconfig:"NOTIFICATIONS_TOKEN"`
	ChannelMapping       string `envconfig:"NOTIFICATIONS_CHANNEL_MAPPING"`
}

func (c *Config) IsGithubApp() bool {
	return c.Github.AppID != ""
}

// Validate fails on settings the server cannot start without
func (c *Config) Validate() error {
	if c.Github.WebhookSecret == "" {
		return fmt.Errorf("please provide the GITHUB_WEBHOOK_SECRET variable")
	}
	if err := c.ValidateDelivery(); err != nil {
		return err
	}

	return nil
}

// ValidateDelivery checks the settings needed to resolve content and send messages
func (c *Config) ValidateDelivery() error {
	if c.IsGithubApp() {
		if c.Github.PrivateKey == "" {
			return fmt.Errorf("please provide the GITHUB_PRIVATE_KEY variable")
		}
		if _, err := c.InstallationID(); err != nil {
			return err
		}
	} else if c.Github.Token == "" {
		return fmt.Errorf("please provide either GITHUB_APP_ID and GITHUB_PRIVATE_KEY or GITHUB_TOKEN")
	}

	switch c.Notifications.Provider {
	case notifications.ProviderMattermost:
		if c.Notifications.MattermostWebhookURL == "" {
			return fmt.Errorf("please provide the MATTERMOST_WEBHOOK_URL variable")
		}
	case notifications.ProviderSlack, notifications.ProviderDiscord:
		if c.Notifications.Token == "" {
			return fmt.Errorf("please provide the NOTIFICATIONS_TOKEN variable")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATIONS_PROVIDER %q", c.Notifications.Provider)
	}

	if _, err := c.Channels(); err != nil {
		return err
	}
	if _, err := c.ChannelMapping(); err != nil {
		return err
	}

	return nil
}

// InstallationID is zero when deliveries pick the installation
func (c *Config) InstallationID() (int64, error) {
	if c.Github.InstallationID == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(c.Github.InstallationID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse GITHUB_INSTALLATION_ID: %s", err)
	}
	return id, nil
}

func (c *Config) Channels() (notifier.ProjectChannels, error) {
	channels, err := notifier.ParseProjectChannels(c.ProjectChannels)
	if err != nil {
		return nil, fmt.Errorf("invalid PROJECT_CHANNELS: %s", err)
	}
	return channels, nil
}

// ChannelMapping parses "program=1122334455,information=5544332211"
func (c *Config) ChannelMapping() (map[string]string, error) {
	mapping := map[string]string{}
	for _, pair := range strings.Split(c.Notifications.ChannelMapping, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid NOTIFICATIONS_CHANNEL_MAPPING pair %q", pair)
		}
		mapping[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return mapping, nil
}

func (c *Config) NotificationOptions() (notifications.Options, error) {
	mapping, err := c.ChannelMapping()
	if err != nil {
		return notifications.Options{}, err
	}

	return notifications.Options{
		Provider:             c.Notifications.Provider,
		MattermostWebhookURL: c.Notifications.MattermostWebhookURL,
		MattermostUsername:   c.Notifications.MattermostUsername,
		MattermostIconURL:    c.Notifications.MattermostIconURL,
		Token:                c.Notifications.Token,
		ChannelMapping:       mapping,
	}, nil
}

type Multiline string

func (m *Multiline) Decode(value string) error {
	value = strings.ReplaceAll(value, "\\n", "\n")
	*m = Multiline(value)
	return nil
}

func (m *Multiline) String() string {
	return string(*m)
}
