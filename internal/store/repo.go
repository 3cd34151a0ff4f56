package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/interntrack/interntrack/internal/skillgap"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)
}

// TrackRepo stores the role requirements interns are trained against.
type TrackRepo interface {
	Upsert(ctx context.Context, track skillgap.RoleRequirement) error
	Get(ctx context.Context, id string) (*skillgap.RoleRequirement, error)
	List(ctx context.Context) ([]skillgap.RoleRequirement, error)
	Delete(ctx context.Context, id string) error

	// SeedIfEmpty inserts tracks only when the table has no rows. It
	// reports whether seeding happened.
	SeedIfEmpty(ctx context.Context, tracks []skillgap.RoleRequirement) (bool, error)
}

// Intern is a registered intern with its latest analysis and metrics.
// Analysis and Metrics are opaque JSON documents owned by the engines.
type Intern struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	TrackID   string                 `json:"trackId"`
	Skills    []skillgap.SkillRecord `json:"skills"`
	Onboarded bool                   `json:"onboarded"`
	Analysis  json.RawMessage        `json:"analysis,omitempty"`
	Metrics   json.RawMessage        `json:"metrics,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// InternRepo manages intern profiles.
type InternRepo interface {
	// Create assigns an ID when intern.ID is empty.
	Create(ctx context.Context, intern *Intern) error
	Get(ctx context.Context, id string) (*Intern, error)
	GetByEmail(ctx context.Context, email string) (*Intern, error)
	List(ctx context.Context) ([]Intern, error)

	// Update persists skills, onboarding state, analysis and metrics.
	Update(ctx context.Context, intern *Intern) error
}

// Session is one recorded learning session. Score is nil when the session
// was never graded.
type Session struct {
	ID              string          `json:"id"`
	Sequence        int64           `json:"sequence"`
	InternID        string          `json:"internId"`
	Date            time.Time       `json:"date"`
	TimeIn          time.Time       `json:"timeIn"`
	TimeOut         time.Time       `json:"timeOut"`
	Task            string          `json:"task"`
	Resources       []string        `json:"resources"`
	DurationMinutes int             `json:"durationMinutes"`
	Score           *int            `json:"score"`
	Status          string          `json:"status"`
	QuizResult      json.RawMessage `json:"quizResult,omitempty"`
	Feedback        string          `json:"feedback,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SessionRepo is the append-only session history.
type SessionRepo interface {
	// Append assigns the ID and sequence and stores the session.
	Append(ctx context.Context, session *Session) error

	// ListForIntern returns the intern's sessions oldest-first.
	ListForIntern(ctx context.Context, internID string) ([]Session, error)

	// ListAll returns every session oldest-first.
	ListAll(ctx context.Context) ([]Session, error)
}

// Metric types written by MetricRepo.AppendMetrics.
const (
	MetricOverallScore    = "overall_score"
	MetricConsistency     = "consistency"
	MetricImprovementRate = "improvement_rate"
)

// MetricValues is the numeric part of a performance recompute.
type MetricValues struct {
	OverallScore    float64
	Consistency     float64
	ImprovementRate float64
}

// MetricPoint is one historical metric value.
type MetricPoint struct {
	InternID   string    `json:"internId"`
	Date       time.Time `json:"date"`
	MetricType string    `json:"metricType"`
	Value      float64   `json:"value"`
}

// MetricRepo keeps the history of performance metrics per intern.
type MetricRepo interface {
	AppendMetrics(ctx context.Context, internID string, date time.Time, values MetricValues) error

	// History returns points with date >= since, oldest-first. A zero
	// since returns the full history.
	History(ctx context.Context, internID string, since time.Time) ([]MetricPoint, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest-first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
