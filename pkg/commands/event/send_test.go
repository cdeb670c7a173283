package event

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gimlet-io/project-notifier/pkg/commands"
	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	graphQL := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"node": {"content": {
			"__typename": "Issue",
			"title": "Ship the onboarding flow",
			"url": "https://github.com/gimlet-io/gimlet/issues/42"
		}}}}`)
	}))
	defer graphQL.Close()

	var posted map[string]string
	mattermost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		w.Write([]byte("ok"))
	}))
	defer mattermost.Close()

	t.Setenv("GITHUB_APP_ID", "")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_GRAPHQL_URL", graphQL.URL)
	t.Setenv("NOTIFICATIONS_PROVIDER", "mattermost")
	t.Setenv("MATTERMOST_WEBHOOK_URL", mattermost.URL)
	t.Setenv("PROJECT_CHANNELS", "7=program")

	out := &bytes.Buffer{}
	args := []string{"statusctl", "event", "send", "-f", payloadFile(t, statusChanged), "--env-file", "/does/not/exist"}
	err := commands.RunWithOutput(&Command, args, out)
	assert.Nil(t, err)
	assert.Contains(t, out.String(), "sent to program")
	assert.Equal(t, "program", posted["channel"])
	assert.Equal(t,
		"Issue [Ship the onboarding flow](https://github.com/gimlet-io/gimlet/issues/42) status changed from ⚫Todo to 🔵In Progress by [octocat](https://github.com/octocat)",
		posted["text"],
	)
}

func TestSendReportsDispatchFailures(t *testing.T) {
	graphQL := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"node": null}}`)
	}))
	defer graphQL.Close()

	mattermost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mattermost.Close()

	t.Setenv("GITHUB_APP_ID", "")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_GRAPHQL_URL", graphQL.URL)
	t.Setenv("NOTIFICATIONS_PROVIDER", "mattermost")
	t.Setenv("MATTERMOST_WEBHOOK_URL", mattermost.URL)
	t.Setenv("PROJECT_CHANNELS", "7=program")

	args := []string{"statusctl", "event", "send", "-f", payloadFile(t, statusChanged), "--env-file", "/does/not/exist"}
	err := commands.RunWithOutput(&Command, args, &bytes.Buffer{})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "status: 500")
}
