// Package performance computes longitudinal metrics from session history.
package performance

import (
	"encoding/json"
	"math"
	"time"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/skillgap"
)

// SessionRecord is one learning session as seen by the analyzer. Score is
// nil for sessions that were never graded.
type SessionRecord struct {
	ID              string          `json:"id,omitempty"`
	InternID        string          `json:"internId,omitempty"`
	Date            time.Time       `json:"date"`
	TimeIn          time.Time       `json:"timeIn,omitzero"`
	TimeOut         time.Time       `json:"timeOut,omitzero"`
	Task            string          `json:"task"`
	Resources       []string        `json:"resources,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Score           *int            `json:"score"`
	Status          string          `json:"status,omitempty"`
	QuizResult      json.RawMessage `json:"quizResult,omitempty"`
}

// Metrics summarizes an intern's performance. Numbers are rounded to one
// decimal place.
type Metrics struct {
	OverallScore    float64  `json:"overallScore"`
	Consistency     float64  `json:"consistency"`
	ImprovementRate float64  `json:"improvementRate"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// trendWindow is the number of scores averaged at each end of the history
// when computing the improvement rate.
const trendWindow = 3

// maxListed bounds the strengths, weaknesses and gaps considered.
const maxListed = 3

func recommendations() []string {
	return []string{
		"Focus on consistent daily practice",
		"Review previous quiz mistakes",
		"Apply concepts to small projects",
	}
}

// Analyze recomputes metrics from the full history. Only sessions with a
// positive score contribute to the numbers. Sessions must be
// ordered oldest-first: the improvement rate compares the last three
// scores with the first three in the order given. prior may be nil.
func Analyze(sessions []SessionRecord, prior *analysis.Analysis) Metrics {
	if len(sessions) == 0 {
		return Metrics{
			Strengths:       []string{},
			Weaknesses:      []string{},
			Recommendations: []string{},
		}
	}

	scores := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		// A zero score counts as ungraded.
		if s.Score != nil && *s.Score > 0 {
			scores = append(scores, float64(*s.Score))
		}
	}

	strengths, weaknesses := classifyGaps(prior)

	return Metrics{
		OverallScore:    round1(mean(scores)),
		Consistency:     round1(consistency(scores)),
		ImprovementRate: round1(improvementRate(scores)),
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: recommendations(),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev uses the n-1 denominator. Requires len(xs) >= 2.
func sampleStdev(xs []float64) float64 {
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// consistency is 100 when there is no variance signal, including a
// history with no graded sessions.
func consistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 100
	}
	return max(0, 100-sampleStdev(scores)*20)
}

func improvementRate(scores []float64) float64 {
	if len(scores) <= trendWindow {
		return 0
	}
	older := mean(scores[:trendWindow])
	recent := mean(scores[len(scores)-trendWindow:])
	if older <= 0 {
		return 0
	}
	return (recent - older) / older * 100
}

// classifyGaps scans the first gaps of the prior analysis: LOW priority
// gaps count as strengths, everything else as weaknesses.
func classifyGaps(prior *analysis.Analysis) (strengths, weaknesses []string) {
	strengths, weaknesses = []string{}, []string{}
	if prior == nil {
		return strengths, weaknesses
	}

	gaps := prior.Gaps
	if len(gaps) > maxListed {
		gaps = gaps[:maxListed]
	}
	for _, g := range gaps {
		if g.Priority == skillgap.PriorityLow {
			strengths = append(strengths, g.Skill)
		} else {
			weaknesses = append(weaknesses, g.Skill)
		}
	}
	return strengths, weaknesses
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
