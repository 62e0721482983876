package llm

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := openEventRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"title":"x"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	p := WithLogging(mock, events, logging.Nop())

	ctx := WithPurpose(t.Context(), "lesson")
	_, err := p.Generate(ctx, Request{
		System:   "mentor",
		Messages: []Message{{Role: RoleUser, Content: "teach me"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)

	got, err := events.QueryLLMEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "mock", e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, "lesson", e.Purpose)
	assert.Equal(t, 12, e.InputTokens)
	assert.Equal(t, 34, e.OutputTokens)
	assert.True(t, e.Success)
	assert.Equal(t, `{"title":"x"}`, e.ResponseBody)
	assert.Contains(t, e.RequestBody, "[system]\nmentor")
	assert.Contains(t, e.RequestBody, "[user]\nteach me")
	assert.Contains(t, e.RequestBody, "[schema: test-card]")
}

func TestLogging_RecordsFailure(t *testing.T) {
	events := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	p := WithLogging(mock, events, logging.Nop())

	_, err := p.Generate(t.Context(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)

	got, err := events.QueryLLMEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Success)
	assert.Equal(t, "unknown", got[0].Purpose)
	assert.True(t, strings.Contains(got[0].ErrorMessage, "rate limited"))
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, nil, nil)

	_, err := p.Generate(t.Context(), Request{})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, p.Name())
}

func TestNewProvider_LogsEachAttempt(t *testing.T) {
	events := openEventRepo(t)

	cfg := Config{Provider: ProviderMock, Retry: fastRetry(3)}
	p, err := NewProvider(t.Context(), cfg, events, logging.Nop())
	require.NoError(t, err)

	// The mock built by the factory has an empty queue, so every attempt fails.
	_, err = p.Generate(t.Context(), Request{})
	require.Error(t, err)

	got, err := events.QueryLLMEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, got, cfg.Retry.MaxAttempts)
}
