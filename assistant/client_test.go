package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsExpectedRequest(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"choices":[{"message":{"content":"about $85"}}]}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{APIKey: "test-key", APIURL: ts.URL})
	text, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "desk price?"}}, "")

	require.NoError(t, err)
	assert.Equal(t, "about $85", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, DefaultModel, gotBody["model"])
	assert.Equal(t, 0.3, gotBody["temperature"])
	assert.Equal(t, float64(512), gotBody["max_tokens"])
}

func TestCompleteFallsBackToTextField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[{"text":"plain completion"}]}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{APIKey: "test-key", APIURL: ts.URL})
	text, err := client.Complete(context.Background(), nil, "")

	require.NoError(t, err)
	assert.Equal(t, "plain completion", text)
}

func TestCompleteErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{APIKey: "test-key", APIURL: ts.URL})
	_, err := client.Complete(context.Background(), nil, "")

	assert.Error(t, err)
}

func TestCompleteWithoutKey(t *testing.T) {
	client := NewClient(ClientOpts{})
	_, err := client.Complete(context.Background(), nil, "")

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, client.Configured())
}

func TestCompleteOverridesModel(t *testing.T) {
	var gotModel string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		gotModel = body.Model
		io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{APIKey: "test-key", APIURL: ts.URL})
	_, err := client.Complete(context.Background(), nil, "llama-4-scout-17b")

	require.NoError(t, err)
	assert.Equal(t, "llama-4-scout-17b", gotModel)
}
