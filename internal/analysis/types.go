package analysis

import "github.com/interntrack/interntrack/internal/skillgap"

// Source records which path produced an Analysis.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Analysis is the skill-gap report for one intern against one track.
type Analysis struct {
	Similarity      int                 `json:"similarity"`
	Gaps            []skillgap.SkillGap `json:"gaps"`
	Recommendations Recommendations     `json:"recommendations"`
	LearningPath    []WeekPlan          `json:"learningPath"`

	// Source is set by the engine, never taken from model output.
	Source Source `json:"source,omitempty"`
}

// Recommendations holds learning material suggested for the gaps.
type Recommendations struct {
	Videos        []VideoRef `json:"videos"`
	Documentation []DocRef   `json:"documentation"`
}

// VideoRef points to a video resource.
type VideoRef struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// DocRef points to a written resource.
type DocRef struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// WeekPlan is one step of a learning path.
type WeekPlan struct {
	Week      int      `json:"week"`
	Focus     string   `json:"focus"`
	Resources []string `json:"resources"`
	Milestone string   `json:"milestone"`
}
