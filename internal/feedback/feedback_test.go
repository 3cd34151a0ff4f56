package feedback

import (
	"context"
	"strings"
	"testing"

	"github.com/interntrack/interntrack/internal/llm"
)

func TestTemplate(t *testing.T) {
	want := "Good effort on React hooks! Your score of 4/10 shows understanding, but there's room for improvement. Focus on reviewing incorrect answers and apply the concepts in practice."
	if got := Template("React hooks", 4); got != want {
		t.Errorf("Template() = %q", got)
	}
}

func TestFeedback_ModelPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Strong grasp of hooks. Revisit effect cleanup.\n"})
	e := NewEngine(mock, DefaultConfig())

	correct := 7
	got := e.Feedback(context.Background(), "React hooks", 7, 45, QuizSummary{
		TotalQuestions: 10,
		CorrectAnswers: &correct,
		Strengths:      []string{"Q1", "Q2"},
		Weaknesses:     []string{"Q5"},
	})

	if got != "Strong grasp of hooks. Revisit effect cleanup." {
		t.Errorf("feedback = %q", got)
	}
	if mock.Purposes[0] != llm.PurposeFeedback {
		t.Errorf("purpose = %q", mock.Purposes[0])
	}

	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{`"React hooks"`, "45 minutes", "7/10", "Total Questions: 10", "Areas of Strength: Q1, Q2", "Areas for Improvement: Q5", "2-3 sentences"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestFeedback_PromptDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	NewEngine(mock, DefaultConfig()).Feedback(context.Background(), "SQL", 3, 20, QuizSummary{})

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Total Questions: 10") {
		t.Error("expected total questions to default to 10")
	}
	if !strings.Contains(prompt, "Correct Answers: 3") {
		t.Error("expected correct answers to default to the score")
	}
}

func TestFeedback_Fallback(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{}}},
		{"empty text", llm.MockResponse{Text: "   \n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(llm.NewMockProvider(tt.resp), DefaultConfig())
			got := e.Feedback(context.Background(), "Docker", 5, 30, QuizSummary{})
			if got != Template("Docker", 5) {
				t.Errorf("feedback = %q, want template", got)
			}
		})
	}
}

func TestFeedback_NilProvider(t *testing.T) {
	got := NewEngine(nil, DefaultConfig()).Feedback(context.Background(), "Go", 8, 60, QuizSummary{})
	if got != Template("Go", 8) {
		t.Errorf("feedback = %q, want template", got)
	}
}
