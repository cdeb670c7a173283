package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/sirupsen/logrus"
)

const slackPostMessageURL = "https://slack.com/api/chat.postMessage"

// SlackProvider posts with a bot token through chat.postMessage
type SlackProvider struct {
	Token string
	// URL overrides the chat.postMessage endpoint
	URL string

	Client *http.Client
}

type slackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type slackResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

// markdownLink matches [text](url) where text may carry backslash escapes
var markdownLink = regexp.MustCompile(`\[((?:\\.|[^\\\]])*)\]\(([^)\s]+)\)`)

var (
	markdownUnescaper = regexp.MustCompile(`\\(.)`)
	slackEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	// Slack has no escape for | inside a link label
	slackLabelEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "|", "∣")
	slackURLEscaper   = strings.NewReplacer("&", "&amp;", "<", "%3C", ">", "%3E", "|", "%7C")
)

// slackText rewrites [text](url) links to Slack's <url|text> and escapes the rest for mrkdwn
func slackText(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range markdownLink.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(slackEscaper.Replace(text[last:m[0]]))
		label := markdownUnescaper.ReplaceAllString(text[m[2]:m[3]], "$1")
		fmt.Fprintf(&b, "<%s|%s>", slackURLEscaper.Replace(text[m[4]:m[5]]), slackLabelEscaper.Replace(label))
		last = m[1]
	}
	b.WriteString(slackEscaper.Replace(text[last:]))
	return b.String()
}

func (s *SlackProvider) Dispatch(ctx context.Context, msg *notifier.Message) error {
	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(slackMessage{
		Channel: msg.Channel,
		Text:    slackText(msg.Text),
	})
	if err != nil {
		return fmt.Errorf("cannot encode slack message: %s", err)
	}

	url := s.URL
	if url == "" {
		url = slackPostMessageURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, b)
	if err != nil {
		return fmt.Errorf("cannot create slack request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	res, err := httpClient(s.Client).Do(req)
	if err != nil {
		return fmt.Errorf("could not post to slack: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("could not post to slack, status: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("cannot read slack response: %s", err)
	}
	var parsed slackResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return fmt.Errorf("cannot parse slack response: %s", err)
	}
	if !parsed.Ok {
		logrus.Debugf("Slack response: %s", string(body))
		return fmt.Errorf("slack rejected the message: %s", parsed.Error)
	}

	return nil
}
