package customGithub

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.Nil(t, err)

	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return key, string(keyPEM)
}

func fakeTokenEndpoint(t *testing.T, key *rsa.PrivateKey, expiresIn time.Duration) (*httptest.Server, *int32) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		var installationID int64
		_, err := fmt.Sscanf(r.URL.Path, "/app/installations/%d/access_tokens", &installationID)
		if err != nil || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		appJWT := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(appJWT, claims, func(token *jwt.Token) (interface{}, error) {
			return &key.PublicKey, nil
		})
		if err != nil || claims["iss"] != "12345" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"token": "ghs_installation_%d", "expires_at": "%s"}`,
			installationID, time.Now().Add(expiresIn).UTC().Format(time.RFC3339))
	}))
	return server, &calls
}

func Test_AppTokenManager(t *testing.T) {
	key, keyPEM := testKey(t)
	server, calls := fakeTokenEndpoint(t, key, time.Hour)
	defer server.Close()

	tm, err := NewAppTokenManager("12345", keyPEM, 0, server.URL)
	require.Nil(t, err)

	token, err := tm.Token(context.Background(), 4242)
	assert.Nil(t, err)
	assert.Equal(t, "ghs_installation_4242", token)

	token, err = tm.Token(context.Background(), 4242)
	assert.Nil(t, err)
	assert.Equal(t, "ghs_installation_4242", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "valid tokens should be cached")

	token, err = tm.Token(context.Background(), 7)
	assert.Nil(t, err)
	assert.Equal(t, "ghs_installation_7", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func Test_AppTokenManagerRefreshesExpiringTokens(t *testing.T) {
	key, keyPEM := testKey(t)
	server, calls := fakeTokenEndpoint(t, key, time.Minute)
	defer server.Close()

	tm, err := NewAppTokenManager("12345", keyPEM, 0, server.URL)
	require.Nil(t, err)

	_, err = tm.Token(context.Background(), 4242)
	assert.Nil(t, err)
	_, err = tm.Token(context.Background(), 4242)
	assert.Nil(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func Test_AppTokenManagerPinnedInstallation(t *testing.T) {
	key, keyPEM := testKey(t)
	server, _ := fakeTokenEndpoint(t, key, time.Hour)
	defer server.Close()

	tm, err := NewAppTokenManager("12345", keyPEM, 99, server.URL)
	require.Nil(t, err)

	token, err := tm.Token(context.Background(), 0)
	assert.Nil(t, err)
	assert.Equal(t, "ghs_installation_99", token)
}

func Test_AppTokenManagerErrors(t *testing.T) {
	_, err := NewAppTokenManager("12345", "not a key", 0, "")
	assert.NotNil(t, err)

	_, keyPEM := testKey(t)
	otherKey, _ := testKey(t)
	server, _ := fakeTokenEndpoint(t, otherKey, time.Hour)
	defer server.Close()

	tm, err := NewAppTokenManager("12345", keyPEM, 0, server.URL)
	require.Nil(t, err)

	_, err = tm.Token(context.Background(), 0)
	assert.NotNil(t, err, "should require an installation")

	_, err = tm.Token(context.Background(), 4242)
	assert.NotNil(t, err, "should surface rejected app tokens")
}

func Test_StaticToken(t *testing.T) {
	token, err := StaticToken("ghp_abc").Token(context.Background(), 0)
	assert.Nil(t, err)
	assert.Equal(t, "ghp_abc", token)

	_, err = StaticToken("").Token(context.Background(), 0)
	assert.NotNil(t, err)
}
