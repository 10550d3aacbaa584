package llmsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/trackademics/core"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConfig(baseURL string) *core.Config {
	conf := &core.Config{AppName: "Trackademics"}
	conf.Assistant.Provider = ProviderAnthropic
	conf.Assistant.APIKey = "test-key"
	conf.Assistant.BaseURL = baseURL
	conf.Assistant.Model = "claude-3-5-haiku-latest"
	conf.Assistant.MaxTokens = 256
	conf.Assistant.Temperature = 0.7
	conf.Assistant.Timeout = 5 * time.Second
	return conf
}

func TestAnthropicProvider_Ask(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int64   `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		System      []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01", "type": "message", "role": "assistant", "model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "Start with an outline."}],
			"stop_reason": "end_turn", "usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p := NewProvider(testConfig(srv.URL), nopLogger{})
	ans, err := p.Ask(context.Background(), "Title: Essay\nDescription: Hamlet", "Where do I start?")
	require.NoError(t, err)
	assert.Equal(t, "Start with an outline.", ans)

	assert.Equal(t, "claude-3-5-haiku-latest", got.Model)
	assert.Equal(t, int64(256), got.MaxTokens)
	assert.Equal(t, 0.7, got.Temperature)
	require.Len(t, got.System, 1)
	assert.Equal(t, "Title: Essay\nDescription: Hamlet", got.System[0].Text)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Where do I start?", got.Messages[0].Content[0].Text)
}

func TestAnthropicProvider_Ask_failure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(testConfig(srv.URL))
	_, err := p.Ask(context.Background(), "", "hello?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
	assert.Equal(t, 1, calls, "no retries")
}

func TestNewProvider_fallsBackToConsole(t *testing.T) {
	conf := testConfig("")
	conf.Assistant.APIKey = ""
	_, ok := NewProvider(conf, nopLogger{}).(*consoleProvider)
	assert.True(t, ok)

	conf.Assistant.Provider = "lol"
	_, ok = NewProvider(conf, nopLogger{}).(*consoleProvider)
	assert.True(t, ok)
}

func TestConsoleProvider_Ask(t *testing.T) {
	var out bytes.Buffer
	p := &consoleProvider{out: &out, appName: "Trackademics"}

	ans, err := p.Ask(context.Background(), "Title: Lab", "What to bring?")
	require.NoError(t, err)
	assert.Contains(t, ans, `"What to bring?"`)
	assert.Contains(t, out.String(), "System: Title: Lab\n")
	assert.Contains(t, out.String(), "User: What to bring?\n")
	assert.Contains(t, AskedQuestions, "What to bring?")
}
