// Package tracker runs the intern workflows: registration, onboarding
// analysis, daily quizzes and session completion with metric recompute.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/feedback"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/skillgap"
	"github.com/interntrack/interntrack/internal/store"
	"github.com/interntrack/interntrack/internal/tracks"
)

var (
	// ErrInvalid marks input the service refuses before touching storage.
	ErrInvalid = errors.New("invalid input")

	// ErrEmailTaken is returned when registering an email twice.
	ErrEmailTaken = errors.New("email already registered")
)

// TrackSource resolves tracks by ID.
type TrackSource interface {
	Get(ctx context.Context, id string) (*skillgap.RoleRequirement, error)
	List(ctx context.Context) ([]skillgap.RoleRequirement, error)
	Upsert(ctx context.Context, track skillgap.RoleRequirement) error
}

// Deps wires the service. Nil engines run on their offline fallbacks.
type Deps struct {
	Tracks   TrackSource
	Interns  store.InternRepo
	Sessions store.SessionRepo
	Metrics  store.MetricRepo

	Analysis *analysis.Engine
	Quiz     *quiz.Engine
	Feedback *feedback.Engine

	// Now defaults to time.Now.
	Now func() time.Time
}

// Service coordinates the engines and the repositories.
type Service struct {
	tracks   TrackSource
	interns  store.InternRepo
	sessions store.SessionRepo
	metrics  store.MetricRepo

	analyzer *analysis.Engine
	quizzes  *quiz.Engine
	feedback *feedback.Engine

	now func() time.Time
}

// New creates a Service.
func New(d Deps) *Service {
	s := &Service{
		tracks:   d.Tracks,
		interns:  d.Interns,
		sessions: d.Sessions,
		metrics:  d.Metrics,
		analyzer: d.Analysis,
		quizzes:  d.Quiz,
		feedback: d.Feedback,
		now:      d.Now,
	}
	if s.analyzer == nil {
		s.analyzer = analysis.NewEngine(nil, analysis.DefaultConfig())
	}
	if s.quizzes == nil {
		s.quizzes = quiz.NewEngine(nil, quiz.DefaultConfig())
	}
	if s.feedback == nil {
		s.feedback = feedback.NewEngine(nil, feedback.DefaultConfig())
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Tracks lists the catalog.
func (s *Service) Tracks(ctx context.Context) ([]skillgap.RoleRequirement, error) {
	return s.tracks.List(ctx)
}

// Track returns one track or store.ErrNotFound.
func (s *Service) Track(ctx context.Context, id string) (*skillgap.RoleRequirement, error) {
	return s.tracks.Get(ctx, id)
}

// PutTrack validates and stores a track.
func (s *Service) PutTrack(ctx context.Context, track skillgap.RoleRequirement) error {
	if err := tracks.Validate(&track); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.tracks.Upsert(ctx, track)
}

// Register creates an intern on an existing track.
func (s *Service) Register(ctx context.Context, name, email, trackID string) (*store.Intern, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email %q is not valid", ErrInvalid, email)
	}

	if _, err := s.tracks.Get(ctx, trackID); err != nil {
		return nil, fmt.Errorf("track %q: %w", trackID, err)
	}

	switch _, err := s.interns.GetByEmail(ctx, email); {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", email, ErrEmailTaken)
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	intern := &store.Intern{
		Name:    name,
		Email:   email,
		TrackID: trackID,
		Skills:  []skillgap.SkillRecord{},
	}
	if err := s.interns.Create(ctx, intern); err != nil {
		return nil, err
	}
	return intern, nil
}

// Intern returns one intern or store.ErrNotFound.
func (s *Service) Intern(ctx context.Context, id string) (*store.Intern, error) {
	return s.interns.Get(ctx, id)
}

// Interns lists every intern.
func (s *Service) Interns(ctx context.Context) ([]store.Intern, error) {
	return s.interns.List(ctx)
}

// Onboard records the intern's self-assessed skills and stores a skill-gap
// analysis against the intern's track. Onboarding again replaces both.
func (s *Service) Onboard(ctx context.Context, internID string, skills []skillgap.SkillRecord) (*analysis.Analysis, error) {
	if err := validateSkills(skills); err != nil {
		return nil, err
	}

	intern, err := s.interns.Get(ctx, internID)
	if err != nil {
		return nil, err
	}
	track, err := s.tracks.Get(ctx, intern.TrackID)
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", intern.TrackID, err)
	}

	a := s.analyzer.Analyze(ctx, *track, skills)
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	intern.Skills = skills
	intern.Onboarded = true
	intern.Analysis = raw
	if err := s.interns.Update(ctx, intern); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "intern onboarded",
		"intern", intern.ID,
		"track", track.ID,
		"similarity", a.Similarity,
		"source", a.Source,
	)
	return a, nil
}

// Analyze runs a skill-gap analysis without touching storage.
func (s *Service) Analyze(ctx context.Context, role skillgap.RoleRequirement, skills []skillgap.SkillRecord) (*analysis.Analysis, error) {
	if err := tracks.Validate(&role); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := validateSkills(skills); err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(ctx, role, skills), nil
}

// StartQuiz generates the quiz for a study session.
func (s *Service) StartQuiz(ctx context.Context, task string, resources []string) ([]quiz.QuizItem, error) {
	if strings.TrimSpace(task) == "" {
		return nil, fmt.Errorf("%w: task is required", ErrInvalid)
	}
	return s.quizzes.Generate(ctx, task, resources), nil
}

func validateSkills(skills []skillgap.SkillRecord) error {
	for _, sk := range skills {
		if strings.TrimSpace(sk.Name) == "" {
			return fmt.Errorf("%w: skill name is required", ErrInvalid)
		}
		if sk.Level < 0 || sk.Level > 5 {
			return fmt.Errorf("%w: skill %s: level %d out of range 0-5", ErrInvalid, sk.Name, sk.Level)
		}
	}
	return nil
}

// decodeAnalysis returns nil for interns that were never onboarded or whose
// stored analysis no longer decodes.
func decodeAnalysis(ctx context.Context, intern *store.Intern) *analysis.Analysis {
	if len(intern.Analysis) == 0 {
		return nil
	}
	var a analysis.Analysis
	if err := json.Unmarshal(intern.Analysis, &a); err != nil {
		slog.WarnContext(ctx, "stored analysis unreadable", "intern", intern.ID, "error", err)
		return nil
	}
	return &a
}
