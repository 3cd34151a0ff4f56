package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/interntrack/interntrack/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"similarity":80}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "not json"},
	)

	resp1, err := mock.Generate(context.Background(), UserPrompt("", "first", 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"similarity":80}` {
		t.Fatalf("unexpected text %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), UserPrompt("", "second", 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "not json" {
		t.Fatalf("unexpected text %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCallsAndPurpose(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})

	ctx := WithPurpose(context.Background(), PurposeFeedback)
	_, _ = mock.Generate(ctx, UserPrompt("sys", "hello", 64, 0))

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
	if mock.Purposes[0] != PurposeFeedback {
		t.Fatalf("expected purpose %q, got %q", PurposeFeedback, mock.Purposes[0])
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuiz)
	if p := PurposeFrom(ctx); p != PurposeQuiz {
		t.Fatalf("expected %q, got %q", PurposeQuiz, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_FastSwitchesEveryVendor(t *testing.T) {
	cfg := DefaultConfig().Fast()
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini model = %q, want gemini-flash", cfg.Gemini.Model)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("anthropic model = %q, want claude-haiku", cfg.Anthropic.Model)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q, want gpt-4o-mini", cfg.OpenAI.Model)
	}

	base := DefaultConfig()
	if base.Gemini.Model != "gemini-pro" {
		t.Errorf("Fast must not mutate the receiver, got %q", base.Gemini.Model)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("INTERNTRACK_LLM_PROVIDER", "openai")
	t.Setenv("INTERNTRACK_OPENAI_API_KEY", "sk-env")
	t.Setenv("INTERNTRACK_OPENAI_FAST_MODEL", "gpt-4.1-mini")
	t.Setenv("INTERNTRACK_LLM_TIMEOUT", "15s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Fast().OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("fast model = %q", cfg.Fast().OpenAI.Model)
	}
	if cfg.Timeout.String() != "15s" {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

func TestNewProvider_UnknownVendor(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "palm"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccessAndFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Text: "hello", Usage: Usage{InputTokens: 3, OutputTokens: 2}})
	p := WithLogging(mock, "gemini", repo)

	ctx := WithPurpose(context.Background(), PurposeAnalysis)
	if _, err := p.Generate(ctx, UserPrompt("sys", "analyze me", 10, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, UserPrompt("sys", "again", 10, 0)); err == nil {
		t.Fatal("expected error from exhausted mock")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != PurposeAnalysis || ok.Provider != "gemini" {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	if ok.ResponseBody != "hello" || ok.InputTokens != 3 {
		t.Fatalf("response not captured: %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[user]\nanalyze me") {
		t.Fatalf("request body not serialized: %q", ok.RequestBody)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Fatalf("unexpected failure event: %+v", failed)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	resp, err := p.Generate(context.Background(), UserPrompt("", "x", 1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.5-pro"); c == nil || c.InputPerMTok != 1.25 {
		t.Fatalf("unexpected cost for gemini-2.5-pro: %+v", c)
	}
	if c := LookupCost("google/gemini-2.5-flash"); c == nil || c.OutputPerMTok != 2.5 {
		t.Fatalf("vendor-prefixed lookup failed: %+v", c)
	}
	if c := LookupCost("unknown-model"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
	got := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}.Cost(1_000_000, 500_000)
	if got != 2 {
		t.Fatalf("Cost = %v, want 2", got)
	}
}
