// Package feedback writes short coaching notes after a graded session.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/interntrack/interntrack/internal/llm"
)

// QuizSummary is the part of a graded quiz the feedback prompt uses. Zero
// TotalQuestions and nil CorrectAnswers fall back to 10 and the score.
type QuizSummary struct {
	TotalQuestions int
	CorrectAnswers *int
	Strengths      []string
	Weaknesses     []string
}

// Config holds feedback generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for feedback generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

// Engine produces feedback text. It is meant to run on the fast model tier.
type Engine struct {
	provider llm.Provider
	cfg      Config
}

// NewEngine creates a feedback engine. A nil provider always yields the
// template.
func NewEngine(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// Template is the feedback used whenever the model is unavailable.
func Template(topic string, score int) string {
	return fmt.Sprintf("Good effort on %s! Your score of %d/10 shows understanding, but there's room for improvement. Focus on reviewing incorrect answers and apply the concepts in practice.", topic, score)
}

// Feedback never fails: provider errors and empty output yield Template.
func (e *Engine) Feedback(ctx context.Context, topic string, score, durationMinutes int, quiz QuizSummary) string {
	text, err := e.generate(ctx, topic, score, durationMinutes, quiz)
	if err != nil {
		slog.WarnContext(ctx, "feedback fell back to template",
			"purpose", llm.PurposeFeedback,
			"topic", topic,
			"error", err,
		)
		return Template(topic, score)
	}
	return text
}

func (e *Engine) generate(ctx context.Context, topic string, score, durationMinutes int, quiz QuizSummary) (string, error) {
	if e.provider == nil {
		return "", &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	req := llm.UserPrompt("", buildFeedbackPrompt(topic, score, durationMinutes, quiz), e.cfg.MaxTokens, e.cfg.Temperature)
	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &llm.ErrInvalidResponse{Err: fmt.Errorf("empty feedback")}
	}
	return text, nil
}

func buildFeedbackPrompt(topic string, score, durationMinutes int, quiz QuizSummary) string {
	total := quiz.TotalQuestions
	if total == 0 {
		total = 10
	}
	correct := score
	if quiz.CorrectAnswers != nil {
		correct = *quiz.CorrectAnswers
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Provide constructive feedback for an intern who studied %q for %d minutes and scored %d/10 on their assessment.\n\n",
		topic, durationMinutes, score))
	b.WriteString("Quiz Performance Details:\n")
	b.WriteString(fmt.Sprintf("- Total Questions: %d\n", total))
	b.WriteString(fmt.Sprintf("- Correct Answers: %d\n", correct))
	b.WriteString(fmt.Sprintf("- Areas of Strength: %s\n", strings.Join(quiz.Strengths, ", ")))
	b.WriteString(fmt.Sprintf("- Areas for Improvement: %s\n", strings.Join(quiz.Weaknesses, ", ")))
	b.WriteString("\nProvide specific, actionable feedback in 2-3 sentences. Focus on both what was done well and concrete suggestions for improvement.")
	return b.String()
}
