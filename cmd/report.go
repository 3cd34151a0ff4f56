package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/performance"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/skillgap"
	"github.com/interntrack/interntrack/internal/store"
	"github.com/interntrack/interntrack/internal/tracker"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorGood    = lipgloss.Color("#22C55E")
	colorWarn    = lipgloss.Color("#F97316")
	colorBad     = lipgloss.Color("#F43F5E")
	colorDim     = lipgloss.Color("#94A3B8")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colorDim)
	goodStyle    = lipgloss.NewStyle().Foreground(colorGood)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	badStyle     = lipgloss.NewStyle().Foreground(colorBad)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const ruleWidth = 72

func rule(w io.Writer) {
	fmt.Fprintln(w, labelStyle.Render(strings.Repeat("─", ruleWidth)))
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(title))
	rule(w)
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), value)
}

// scoreStyle colors a 0-100 value.
func scoreStyle(v float64) lipgloss.Style {
	switch {
	case v >= 70:
		return goodStyle
	case v >= 40:
		return warnStyle
	default:
		return badStyle
	}
}

func priorityStyle(p skillgap.Priority) lipgloss.Style {
	switch p {
	case skillgap.PriorityHigh:
		return badStyle
	case skillgap.PriorityMedium:
		return warnStyle
	default:
		return goodStyle
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTracks(w io.Writer, list []skillgap.RoleRequirement) {
	fmt.Fprintf(w, "%-12s  %-28s  %s\n", "ID", "Title", "Domain")
	rule(w)
	for _, t := range list {
		fmt.Fprintf(w, "%-12s  %-28s  %s\n", truncate(t.ID, 12), truncate(t.Title, 28), t.Domain)
	}
}

func renderTrack(w io.Writer, t *skillgap.RoleRequirement) {
	fmt.Fprintln(w, headingStyle.Render(t.Title))
	field(w, "ID", t.ID)
	field(w, "Domain", t.Domain)
	if t.Description != "" {
		field(w, "Description", t.Description)
	}
	heading(w, "Required skills")
	for _, s := range t.RequiredSkills {
		fmt.Fprintf(w, "  %-24s  level %d\n", s.Name, s.Level())
	}
}

func renderIntern(w io.Writer, in *store.Intern) {
	fmt.Fprintln(w, headingStyle.Render(in.Name))
	field(w, "ID", in.ID)
	field(w, "Email", in.Email)
	field(w, "Track", in.TrackID)
	field(w, "Onboarded", in.Onboarded)
	field(w, "Registered", in.CreatedAt.Local().Format("2006-01-02 15:04"))
	if len(in.Skills) > 0 {
		heading(w, "Skills")
		for _, s := range in.Skills {
			fmt.Fprintf(w, "  %-24s  %d/5\n", s.Name, s.Level)
		}
	}
}

func renderInterns(w io.Writer, list []store.Intern) {
	fmt.Fprintf(w, "%-36s  %-20s  %-28s  %-10s  %s\n", "ID", "Name", "Email", "Track", "Onboarded")
	rule(w)
	for _, in := range list {
		fmt.Fprintf(w, "%-36s  %-20s  %-28s  %-10s  %v\n",
			in.ID, truncate(in.Name, 20), truncate(in.Email, 28), truncate(in.TrackID, 10), in.Onboarded)
	}
}

func renderAnalysis(w io.Writer, a *analysis.Analysis) {
	sim := scoreStyle(float64(a.Similarity)).Render(fmt.Sprintf("%d%%", a.Similarity))
	fmt.Fprintln(w, cardStyle.Render(fmt.Sprintf("Skill match %s   (%s)", sim, a.Source)))

	heading(w, "Skill gaps")
	if len(a.Gaps) == 0 {
		fmt.Fprintln(w, goodStyle.Render("  All required levels met."))
	}
	for _, g := range a.Gaps {
		fmt.Fprintf(w, "  %-20s %d -> %d  %s  %s\n",
			truncate(g.Skill, 20), g.CurrentLevel, g.RequiredLevel,
			priorityStyle(g.Priority).Render(fmt.Sprintf("%-6s", g.Priority)),
			labelStyle.Render(g.EstimatedImprovementTime))
		fmt.Fprintf(w, "  %s\n", labelStyle.Render(g.Reason))
	}

	heading(w, "Videos")
	for _, v := range a.Recommendations.Videos {
		fmt.Fprintf(w, "  %s  %s\n  %s\n", v.Title, labelStyle.Render(v.Duration), labelStyle.Render(v.URL))
	}
	heading(w, "Documentation")
	for _, d := range a.Recommendations.Documentation {
		fmt.Fprintf(w, "  %s  %s\n  %s\n", d.Title, labelStyle.Render(d.Type), labelStyle.Render(d.URL))
	}

	heading(w, "Learning path")
	for _, p := range a.LearningPath {
		fmt.Fprintf(w, "  Week %d: %s\n", p.Week, p.Focus)
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("milestone:"), p.Milestone)
	}
}

func renderQuiz(w io.Writer, items []quiz.QuizItem) {
	for i, q := range items {
		fmt.Fprintf(w, "%s %s %s\n", headingStyle.Render(fmt.Sprintf("Q%d.", i+1)), q.Question, labelStyle.Render(string(q.Difficulty)))
		for j, opt := range q.Options {
			fmt.Fprintf(w, "   %d) %s\n", j, opt)
		}
		fmt.Fprintln(w)
	}
}

func renderOutcome(w io.Writer, out *tracker.SessionOutcome) {
	r := out.Result
	status := goodStyle.Render(out.Session.Status)
	if out.Session.Status != quiz.StatusCompleted {
		status = warnStyle.Render(out.Session.Status)
	}
	fmt.Fprintln(w, cardStyle.Render(fmt.Sprintf("Score %d/%d  (%.1f%%)  %s", r.Score, r.TotalQuestions, r.Percentage, status)))
	field(w, "Session", out.Session.ID)
	field(w, "Duration", fmt.Sprintf("%d min", out.Session.DurationMinutes))
	if len(r.Strengths) > 0 {
		field(w, "Strengths", strings.Join(r.Strengths, ", "))
	}
	if len(r.Weaknesses) > 0 {
		field(w, "Review", strings.Join(r.Weaknesses, ", "))
	}
	heading(w, "Feedback")
	fmt.Fprintln(w, out.Feedback)
	fmt.Fprintln(w)
	renderMetrics(w, out.Metrics)
}

func renderMetrics(w io.Writer, m performance.Metrics) {
	heading(w, "Performance")
	field(w, "Overall", fmt.Sprintf("%.1f/10", m.OverallScore))
	field(w, "Consistency", scoreStyle(m.Consistency).Render(fmt.Sprintf("%.1f%%", m.Consistency)))

	trend := fmt.Sprintf("%+.1f%%", m.ImprovementRate)
	if m.ImprovementRate < 0 {
		trend = badStyle.Render(trend)
	} else if m.ImprovementRate > 0 {
		trend = goodStyle.Render(trend)
	}
	field(w, "Improvement", trend)

	if len(m.Strengths) > 0 {
		field(w, "Strengths", strings.Join(m.Strengths, ", "))
	}
	if len(m.Weaknesses) > 0 {
		field(w, "Weaknesses", strings.Join(m.Weaknesses, ", "))
	}
	for _, r := range m.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}

func renderSessions(w io.Writer, list []store.Session) {
	fmt.Fprintf(w, "%-10s  %-28s  %5s  %6s  %s\n", "Date", "Task", "Min", "Score", "Status")
	rule(w)
	for _, s := range list {
		score := "-"
		if s.Score != nil {
			score = fmt.Sprintf("%d", *s.Score)
		}
		fmt.Fprintf(w, "%-10s  %-28s  %5d  %6s  %s\n",
			s.Date.Format("2006-01-02"), truncate(s.Task, 28), s.DurationMinutes, score, s.Status)
	}
}

func renderCohort(w io.Writer, rows []tracker.CohortRow) {
	fmt.Fprintf(w, "%-20s  %-24s  %-20s  %5s  %8s  %7s\n", "Name", "Email", "Track", "Match", "Sessions", "Overall")
	rule(w)
	for _, r := range rows {
		match := "-"
		if r.Onboarded {
			match = fmt.Sprintf("%d%%", r.Similarity)
		}
		fmt.Fprintf(w, "%-20s  %-24s  %-20s  %5s  %8d  %7.1f\n",
			truncate(r.Name, 20), truncate(r.Email, 24), truncate(r.TrackTitle, 20), match, r.Sessions, r.OverallScore)
	}
}

func renderMetricHistory(w io.Writer, points []store.MetricPoint) {
	heading(w, "History")
	fmt.Fprintf(w, "%-10s  %-18s  %8s\n", "Date", "Metric", "Value")
	for _, p := range points {
		fmt.Fprintf(w, "%-10s  %-18s  %8.1f\n", p.Date.Format("2006-01-02"), p.MetricType, p.Value)
	}
}
