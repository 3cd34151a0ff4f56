package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interntrack/interntrack/internal/llm"
	"github.com/interntrack/interntrack/internal/response"
	"github.com/interntrack/interntrack/internal/skillgap"
)

func testRole() skillgap.RoleRequirement {
	return skillgap.RoleRequirement{
		ID:          "frontend",
		Title:       "Frontend Developer",
		Description: "Build responsive web applications",
		RequiredSkills: []skillgap.RequiredSkill{
			{Name: "React", MinLevel: 4},
			{Name: "CSS", MinLevel: 3},
		},
	}
}

func testSkills() []skillgap.SkillRecord {
	return []skillgap.SkillRecord{{Name: "React", Level: 2}}
}

func modelAnalysisJSON(videoURL, docURL string) string {
	return fmt.Sprintf(`{
		"similarity": 55,
		"gaps": [{"skill": "React", "currentLevel": 2, "requiredLevel": 4, "gapLevel": 2,
			"reason": "Hooks are unfamiliar", "priority": "HIGH", "estimatedImprovementTime": "3 weeks"}],
		"recommendations": {
			"videos": [{"title": "Hooks", "url": %q, "duration": "20:00", "level": "Beginner", "description": "Intro"}],
			"documentation": [{"title": "React docs", "url": %q, "type": "Official Docs", "description": "Docs"}]
		},
		"learningPath": [{"week": 1, "focus": "Hooks", "resources": ["react.dev"], "milestone": "Use useState"}]
	}`, videoURL, docURL)
}

func TestParseAnalysis_Valid(t *testing.T) {
	a, err := ParseAnalysis("```json\n" + modelAnalysisJSON("https://youtu.be/x", "http://react.dev") + "\n```")
	require.NoError(t, err)

	assert.Equal(t, 55, a.Similarity)
	require.Len(t, a.Gaps, 1)
	assert.Equal(t, skillgap.PriorityHigh, a.Gaps[0].Priority)
	assert.Equal(t, "https://youtu.be/x", a.Recommendations.Videos[0].URL)
	assert.Equal(t, 1, a.LearningPath[0].Week)
}

func TestParseAnalysis_InvalidURL(t *testing.T) {
	tests := []struct {
		name  string
		video string
		doc   string
	}{
		{"bad video", "www.youtube.com/watch?v=1", "https://react.dev"},
		{"bad doc", "https://youtu.be/x", "react.dev/learn"},
		{"empty url", "", "https://react.dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(modelAnalysisJSON(tt.video, tt.doc))
			var pe *response.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, response.InvalidContent, pe.Kind)
		})
	}
}

func TestParseAnalysis_OneBadURLAmongMany(t *testing.T) {
	text := `{"recommendations": {"videos": [
		{"url": "https://a"}, {"url": "https://b"}, {"url": "ftp://c"}, {"url": "https://d"}
	]}}`
	_, err := ParseAnalysis(text)
	var pe *response.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, response.InvalidContent, pe.Kind)
}

func TestParseAnalysis_AbsentFieldsTolerated(t *testing.T) {
	a, err := ParseAnalysis(`{"similarity": 40, "recommendations": {"videos": [{"title": "no link"}]}}`)
	require.NoError(t, err)
	assert.Equal(t, 40, a.Similarity)
	assert.Empty(t, a.Gaps)
	assert.Empty(t, a.Recommendations.Documentation)

	a, err = ParseAnalysis(`{}`)
	require.NoError(t, err)
	assert.Zero(t, a.Similarity)
}

func TestParseAnalysis_MistypedFieldsTolerated(t *testing.T) {
	text := `{
		"similarity": 72.5,
		"gaps": [{"skill": "React", "currentLevel": "2", "requiredLevel": 4, "gapLevel": "two", "priority": "HIGH"}],
		"recommendations": {
			"videos": [{"title": "Hooks", "url": "https://youtu.be/x", "duration": 20}],
			"documentation": "see react.dev"
		},
		"learningPath": [{"week": "Week 1", "focus": "Hooks", "resources": "react.dev"}]
	}`

	a, err := ParseAnalysis(text)
	require.NoError(t, err)

	assert.Equal(t, 73, a.Similarity)
	require.Len(t, a.Gaps, 1)
	assert.Equal(t, 2, a.Gaps[0].CurrentLevel)
	assert.Equal(t, 4, a.Gaps[0].RequiredLevel)
	assert.Zero(t, a.Gaps[0].GapLevel)
	require.Len(t, a.Recommendations.Videos, 1)
	assert.Equal(t, "https://youtu.be/x", a.Recommendations.Videos[0].URL)
	assert.Empty(t, a.Recommendations.Videos[0].Duration)
	assert.Empty(t, a.Recommendations.Documentation)
	require.Len(t, a.LearningPath, 1)
	assert.Zero(t, a.LearningPath[0].Week)
	assert.Equal(t, "Hooks", a.LearningPath[0].Focus)
	assert.Empty(t, a.LearningPath[0].Resources)

	a, err = ParseAnalysis(`{"similarity": "high"}`)
	require.NoError(t, err)
	assert.Zero(t, a.Similarity)
}

func TestParseAnalysis_Malformed(t *testing.T) {
	for _, text := range []string{"not json", "", `{"similarity": 4`, `["similarity", 40]`} {
		_, err := ParseAnalysis(text)
		var pe *response.ParseError
		require.ErrorAs(t, err, &pe, "text %q", text)
		assert.Equal(t, response.Malformed, pe.Kind, "text %q", text)
	}
}

func TestFallback(t *testing.T) {
	a := Fallback(testRole(), testSkills())

	assert.Equal(t, SourceFallback, a.Source)
	assert.Equal(t, 100, a.Similarity)
	require.Len(t, a.Gaps, 2)
	assert.Len(t, a.Recommendations.Videos, 5)
	assert.Len(t, a.Recommendations.Documentation, 5)
	require.Len(t, a.LearningPath, 2)
	assert.Equal(t, "React Fundamentals", a.LearningPath[0].Focus)

	for _, v := range a.Recommendations.Videos {
		assert.True(t, strings.HasPrefix(v.URL, "http"), v.URL)
	}
	for _, d := range a.Recommendations.Documentation {
		assert.True(t, strings.HasPrefix(d.URL, "http"), d.URL)
	}
}

func TestFallback_ReturnsFreshCopies(t *testing.T) {
	a := Fallback(testRole(), testSkills())
	a.Recommendations.Videos[0].Title = "changed"
	a.LearningPath[0].Resources[0] = "changed"

	b := Fallback(testRole(), testSkills())
	assert.Equal(t, "React Tutorial for Beginners", b.Recommendations.Videos[0].Title)
	assert.Equal(t, "React Docs", b.LearningPath[0].Resources[0])
}

func TestEngine_ModelPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: modelAnalysisJSON("https://youtu.be/x", "https://react.dev")})
	e := NewEngine(mock, DefaultConfig())

	a := e.Analyze(context.Background(), testRole(), testSkills())

	assert.Equal(t, SourceModel, a.Source)
	assert.Equal(t, 55, a.Similarity)
	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, llm.PurposeAnalysis, mock.Purposes[0])

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Frontend Developer")
	assert.Contains(t, prompt, "Build responsive web applications")
	assert.Contains(t, prompt, `"minLevel": 4`)
	assert.Contains(t, prompt, `"level": 2`)
	assert.Contains(t, prompt, "EXACTLY 5")
}

func TestEngine_MistypedModelOutputKept(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"similarity": "64", "learningPath": [{"week": "Week 1", "focus": "Hooks"}]}`})
	e := NewEngine(mock, DefaultConfig())

	a := e.Analyze(context.Background(), testRole(), testSkills())

	assert.Equal(t, SourceModel, a.Source)
	assert.Equal(t, 64, a.Similarity)
	require.Len(t, a.LearningPath, 1)
	assert.Equal(t, "Hooks", a.LearningPath[0].Focus)
}

func TestEngine_FallbackEqualsCalculator(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"not json", llm.MockResponse{Text: "not json"}},
		{"invalid url", llm.MockResponse{Text: modelAnalysisJSON("javascript:alert(1)", "https://react.dev")}},
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}},
		{"empty text", llm.MockResponse{Text: ""}},
	}

	want := Fallback(testRole(), testSkills())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(llm.NewMockProvider(tt.resp), DefaultConfig())
			got := e.Analyze(context.Background(), testRole(), testSkills())
			assert.Equal(t, want, got)
		})
	}
}

func TestEngine_SingleAttempt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "not json"},
		llm.MockResponse{Text: modelAnalysisJSON("https://a", "https://b")},
	)
	e := NewEngine(mock, DefaultConfig())

	a := e.Analyze(context.Background(), testRole(), testSkills())
	assert.Equal(t, SourceFallback, a.Source)
	assert.Equal(t, 1, mock.CallCount())
}

func TestEngine_NilProvider(t *testing.T) {
	e := NewEngine(nil, DefaultConfig())
	a := e.Analyze(context.Background(), testRole(), testSkills())
	assert.Equal(t, Fallback(testRole(), testSkills()), a)
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(llm.MockResponse{Err: ctx.Err()})
	a := NewEngine(mock, DefaultConfig()).Analyze(ctx, testRole(), testSkills())
	assert.Equal(t, SourceFallback, a.Source)
}
