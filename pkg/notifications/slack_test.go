package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/stretchr/testify/assert"
)

func Test_SlackText(t *testing.T) {
	assert.Equal(t,
		"Issue <https://github.com/gimlet-io/gimlet/issues/42|Ship it> status changed from ⚫Todo to 🔵In Progress by <https://github.com/octocat|octocat>",
		slackText("Issue [Ship it](https://github.com/gimlet-io/gimlet/issues/42) status changed from ⚫Todo to 🔵In Progress by [octocat](https://github.com/octocat)"),
	)
	assert.Equal(t, "Issue unknown title status set to 💚Done by octocat", slackText("Issue unknown title status set to 💚Done by octocat"))
	assert.Equal(t,
		"Pull request <https://github.com/gimlet-io/gimlet/pull/43|[WIP] Fix login> status set to 💚Done by <https://github.com/octocat|octocat>",
		slackText(`Pull request [\[WIP\] Fix login](https://github.com/gimlet-io/gimlet/pull/43) status set to 💚Done by [octocat](https://github.com/octocat)`),
	)
	assert.Equal(t,
		"Issue <https://github.com/gimlet-io/gimlet/issues/44?a=1&amp;b=2|R&amp;D &lt;beta&gt; ∣ docs> status changed from 🟡Q&amp;A to 💚Done by octocat",
		slackText("Issue [R&D <beta> | docs](https://github.com/gimlet-io/gimlet/issues/44?a=1&b=2) status changed from 🟡Q&A to 💚Done by octocat"),
	)
}

func Test_Slack(t *testing.T) {
	var received slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer xoxb-test" {
			w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
			return
		}
		json.NewDecoder(r.Body).Decode(&received)
		if received.Channel == "archived" {
			w.Write([]byte(`{"ok": false, "error": "is_archived"}`))
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	slack := &SlackProvider{Token: "xoxb-test", URL: server.URL}
	err := slack.Dispatch(context.Background(), &notifier.Message{
		Channel: "program",
		Text:    "Issue [Ship it](https://github.com/gimlet-io/gimlet/issues/42) status set to 💚Done by octocat",
	})
	assert.Nil(t, err)
	assert.Equal(t, "program", received.Channel)
	assert.Equal(t, "Issue <https://github.com/gimlet-io/gimlet/issues/42|Ship it> status set to 💚Done by octocat", received.Text)

	err = slack.Dispatch(context.Background(), &notifier.Message{Channel: "archived", Text: "hello"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "is_archived")

	slack = &SlackProvider{Token: "xoxb-wrong", URL: server.URL}
	err = slack.Dispatch(context.Background(), &notifier.Message{Channel: "program", Text: "hello"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid_auth")
}
