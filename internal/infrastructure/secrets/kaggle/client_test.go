package kaggle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, getSecretByLabelEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("X-Kaggle-Authorization"))
		assert.Equal(t, "Bearer iap-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "GOOGLE_API_KEY", body["Label"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"wasSuccessful":true,"result":{"secret":"s3cr3t"}}`))
	}))
	defer srv.Close()

	client := New(Config{URLBase: srv.URL, UserToken: "user-token", IAPToken: "iap-token"})

	secret, err := client.GetSecret(context.Background(), "GOOGLE_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", secret)
}

func TestClient_GetSecret_BackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unsuccessful", status: http.StatusOK, body: `{"wasSuccessful":false,"errors":["nope"]}`},
		{name: "missing result", status: http.StatusOK, body: `{"wasSuccessful":true}`},
		{name: "missing secret", status: http.StatusOK, body: `{"wasSuccessful":true,"result":{}}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := New(Config{URLBase: srv.URL, UserToken: "t"})
			_, err := client.GetSecret(context.Background(), "GOOGLE_API_KEY")
			assert.ErrorIs(t, err, ErrBackend)
		})
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvUserSecretsToken, "")
	_, err := NewFromEnv()
	assert.ErrorIs(t, err, ErrNotInNotebook)

	t.Setenv(EnvUserSecretsToken, "token")
	client, err := NewFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, client)
}
