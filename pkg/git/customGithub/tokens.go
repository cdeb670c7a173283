package customGithub

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-github/v37/github"
	"github.com/sirupsen/logrus"
)

const DefaultAPIURL = "https://api.github.com"

// installation tokens are refreshed when they expire within this window
const refreshWindow = 5 * time.Minute

// TokenProvider hands out a token usable for the given app installation
type TokenProvider interface {
	Token(ctx context.Context, installationID int64) (string, error)
}

// StaticToken is a personal access token, used regardless of installation
type StaticToken string

func (t StaticToken) Token(ctx context.Context, installationID int64) (string, error) {
	if t == "" {
		return "", fmt.Errorf("no github token configured")
	}
	return string(t), nil
}

// AppTokenManager maintains installation tokens of a Github app, one per installation
type AppTokenManager struct {
	appID          string
	privateKey     *rsa.PrivateKey
	installationID int64
	apiURL         *url.URL

	lock   sync.Mutex
	tokens map[int64]*github.InstallationToken
}

// NewAppTokenManager parses the app key upfront so a bad key fails at startup.
// A non-zero installationID pins every token to that installation.
func NewAppTokenManager(appID string, privateKey string, installationID int64, apiURL string) (*AppTokenManager, error) {
	signKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse github app private key: %s", err)
	}

	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL = apiURL + "/"
	}
	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %s", err)
	}

	return &AppTokenManager{
		appID:          appID,
		privateKey:     signKey,
		installationID: installationID,
		apiURL:         parsedURL,
		tokens:         map[int64]*github.InstallationToken{},
	}, nil
}

// Token returns a cached installation token, refreshing it when close to expiry
func (tm *AppTokenManager) Token(ctx context.Context, installationID int64) (string, error) {
	if tm.installationID != 0 {
		installationID = tm.installationID
	}
	if installationID == 0 {
		return "", fmt.Errorf("no github app installation to authenticate as")
	}

	tm.lock.Lock()
	defer tm.lock.Unlock()

	if token, ok := tm.tokens[installationID]; ok && valid(token) {
		return token.GetToken(), nil
	}

	token, err := tm.installationToken(ctx, installationID)
	if err != nil {
		return "", err
	}
	tm.tokens[installationID] = token
	logrus.Debugf("refreshed token of installation %d", installationID)

	return token.GetToken(), nil
}

func valid(token *github.InstallationToken) bool {
	if token.GetToken() == "" || token.ExpiresAt == nil {
		return false
	}
	return token.ExpiresAt.After(time.Now().Add(refreshWindow))
}

func (tm *AppTokenManager) installationToken(ctx context.Context, installationID int64) (*github.InstallationToken, error) {
	appToken, err := tm.appToken()
	if err != nil {
		return nil, err
	}

	client := github.NewClient(&http.Client{Transport: &transport{underlyingTransport: http.DefaultTransport, token: appToken}})
	client.BaseURL = tm.apiURL

	token, _, err := client.Apps.CreateInstallationToken(ctx, installationID, &github.InstallationTokenOptions{})
	if err != nil {
		return nil, fmt.Errorf("could not create token for installation %d: %s", installationID, err)
	}
	return token, nil
}

// appToken returns a signed JWT apptoken for the Github app.
// Issued a minute in the past to allow for clock drift.
func (tm *AppTokenManager) appToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iat": now.Add(-time.Minute).Unix(),
		"exp": now.Add(time.Minute * 5).Unix(),
		"iss": tm.appID,
	})

	return token.SignedString(tm.privateKey)
}

type transport struct {
	underlyingTransport http.RoundTripper
	token               string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Add("Authorization", "Bearer "+t.token)
	return t.underlyingTransport.RoundTrip(req)
}
