package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/interntrack/interntrack/internal/llm"
	"github.com/interntrack/interntrack/internal/response"
)

// Engine generates end-of-session quizzes.
type Engine struct {
	provider llm.Provider
	cfg      Config
}

// NewEngine creates a quiz engine. A nil provider always serves the
// static banks.
func NewEngine(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// ParseQuiz extracts a question array from model text.
func ParseQuiz(text string) ([]QuizItem, error) {
	return response.Decode[[]QuizItem](text, response.Array)
}

// Generate never fails: on a provider error or unusable output it
// returns FallbackQuiz(task).
func (e *Engine) Generate(ctx context.Context, task string, resources []string) []QuizItem {
	items, err := e.generate(ctx, task, resources)
	if err != nil {
		slog.WarnContext(ctx, "quiz generation fell back to static bank",
			"purpose", llm.PurposeQuiz,
			"task", task,
			"error", err,
		)
		return FallbackQuiz(task)
	}
	return items
}

func (e *Engine) generate(ctx context.Context, task string, resources []string) ([]QuizItem, error) {
	if e.provider == nil {
		return nil, &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.UserPrompt(quizSystemPrompt, buildQuizUserMessage(task, resources, e.cfg.Questions), e.cfg.MaxTokens, e.cfg.Temperature).As(llm.FormatJSONArray)
	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := ParseQuiz(resp.Text)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &response.ParseError{Kind: response.Malformed, Err: fmt.Errorf("empty quiz")}
	}
	return items, nil
}
