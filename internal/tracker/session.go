package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/interntrack/interntrack/internal/feedback"
	"github.com/interntrack/interntrack/internal/performance"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/store"
)

// SessionInput is a finished study session with the intern's quiz answers.
// Answers maps question index to the chosen option index. A zero TimeOut
// means the session ends now.
type SessionInput struct {
	InternID  string
	Task      string
	Resources []string
	TimeIn    time.Time
	TimeOut   time.Time
	Quiz      []quiz.QuizItem
	Answers   map[int]int
}

// SessionOutcome is what CompleteSession produced and stored.
type SessionOutcome struct {
	Session  store.Session       `json:"session"`
	Result   quiz.QuizResult     `json:"result"`
	Feedback string              `json:"feedback"`
	Metrics  performance.Metrics `json:"metrics"`
}

// CompleteSession grades the quiz, writes feedback, appends the session and
// recomputes the intern's metrics over the full history.
func (s *Service) CompleteSession(ctx context.Context, in SessionInput) (*SessionOutcome, error) {
	if strings.TrimSpace(in.Task) == "" {
		return nil, fmt.Errorf("%w: task is required", ErrInvalid)
	}
	if len(in.Quiz) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrInvalid)
	}

	intern, err := s.interns.Get(ctx, in.InternID)
	if err != nil {
		return nil, err
	}

	timeOut := in.TimeOut
	if timeOut.IsZero() {
		timeOut = s.now()
	}
	timeIn := in.TimeIn
	if timeIn.IsZero() {
		timeIn = timeOut
	}
	duration := int(timeOut.Sub(timeIn).Minutes())
	if duration < 0 {
		return nil, fmt.Errorf("%w: session ends before it starts", ErrInvalid)
	}

	result := quiz.Grade(in.Quiz, in.Answers)
	result.Feedback = s.feedback.Feedback(ctx, in.Task, result.Score, duration, feedback.QuizSummary{
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: &result.Score,
		Strengths:      result.Strengths,
		Weaknesses:     result.Weaknesses,
	})

	rawResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz result: %w", err)
	}

	score := result.Score
	sess := store.Session{
		InternID:        intern.ID,
		Date:            timeIn,
		TimeIn:          timeIn,
		TimeOut:         timeOut,
		Task:            in.Task,
		Resources:       in.Resources,
		DurationMinutes: duration,
		Score:           &score,
		Status:          quiz.StatusFor(score),
		QuizResult:      rawResult,
		Feedback:        result.Feedback,
	}
	if err := s.sessions.Append(ctx, &sess); err != nil {
		return nil, err
	}

	metrics, err := s.recompute(ctx, intern, timeOut)
	if err != nil {
		return nil, err
	}

	return &SessionOutcome{
		Session:  sess,
		Result:   result,
		Feedback: result.Feedback,
		Metrics:  metrics,
	}, nil
}

// Sessions returns the intern's history, oldest-first.
func (s *Service) Sessions(ctx context.Context, internID string) ([]store.Session, error) {
	if _, err := s.interns.Get(ctx, internID); err != nil {
		return nil, err
	}
	return s.sessions.ListForIntern(ctx, internID)
}

// Performance recomputes metrics from the stored history without
// persisting them.
func (s *Service) Performance(ctx context.Context, internID string) (performance.Metrics, error) {
	intern, err := s.interns.Get(ctx, internID)
	if err != nil {
		return performance.Metrics{}, err
	}
	sessions, err := s.sessions.ListForIntern(ctx, intern.ID)
	if err != nil {
		return performance.Metrics{}, err
	}
	return performance.Analyze(SessionRecords(sessions), decodeAnalysis(ctx, intern)), nil
}

// MetricHistory returns stored metric points from the last days days. A
// non-positive days returns everything.
func (s *Service) MetricHistory(ctx context.Context, internID string, days int) ([]store.MetricPoint, error) {
	if _, err := s.interns.Get(ctx, internID); err != nil {
		return nil, err
	}
	var since time.Time
	if days > 0 {
		since = s.now().AddDate(0, 0, -days)
	}
	return s.metrics.History(ctx, internID, since)
}

func (s *Service) recompute(ctx context.Context, intern *store.Intern, at time.Time) (performance.Metrics, error) {
	sessions, err := s.sessions.ListForIntern(ctx, intern.ID)
	if err != nil {
		return performance.Metrics{}, err
	}
	m := performance.Analyze(SessionRecords(sessions), decodeAnalysis(ctx, intern))

	raw, err := json.Marshal(m)
	if err != nil {
		return performance.Metrics{}, fmt.Errorf("marshal metrics: %w", err)
	}
	intern.Metrics = raw
	if err := s.interns.Update(ctx, intern); err != nil {
		return performance.Metrics{}, err
	}

	err = s.metrics.AppendMetrics(ctx, intern.ID, at, store.MetricValues{
		OverallScore:    m.OverallScore,
		Consistency:     m.Consistency,
		ImprovementRate: m.ImprovementRate,
	})
	if err != nil {
		return performance.Metrics{}, err
	}
	return m, nil
}

// SessionRecords converts stored sessions for the performance analyzer,
// keeping their order.
func SessionRecords(sessions []store.Session) []performance.SessionRecord {
	out := make([]performance.SessionRecord, len(sessions))
	for i, s := range sessions {
		out[i] = performance.SessionRecord{
			ID:              s.ID,
			InternID:        s.InternID,
			Date:            s.Date,
			TimeIn:          s.TimeIn,
			TimeOut:         s.TimeOut,
			Task:            s.Task,
			Resources:       s.Resources,
			DurationMinutes: s.DurationMinutes,
			Score:           s.Score,
			Status:          s.Status,
			QuizResult:      s.QuizResult,
		}
	}
	return out
}
