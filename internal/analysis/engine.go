package analysis

import (
	"context"
	"log/slog"

	"github.com/interntrack/interntrack/internal/llm"
	"github.com/interntrack/interntrack/internal/skillgap"
)

// Engine produces skill-gap analyses, preferring the model and falling
// back to the deterministic calculator.
type Engine struct {
	provider llm.Provider
	cfg      Config
}

// NewEngine creates an analysis engine. A nil provider makes every call
// take the fallback path.
func NewEngine(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// Analyze never fails. Provider errors, malformed output and invalid
// recommendation links all yield Fallback(role, skills).
func (e *Engine) Analyze(ctx context.Context, role skillgap.RoleRequirement, skills []skillgap.SkillRecord) *Analysis {
	a, err := e.generate(ctx, role, skills)
	if err != nil {
		slog.WarnContext(ctx, "skill analysis fell back to calculator",
			"purpose", llm.PurposeAnalysis,
			"role", role.Title,
			"error", err,
		)
		return Fallback(role, skills)
	}
	return a
}

func (e *Engine) generate(ctx context.Context, role skillgap.RoleRequirement, skills []skillgap.SkillRecord) (*Analysis, error) {
	if e.provider == nil {
		return nil, &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	req := llm.UserPrompt(analysisSystemPrompt, buildAnalysisUserMessage(role, skills), e.cfg.MaxTokens, e.cfg.Temperature).As(llm.FormatJSONObject)
	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	a, err := ParseAnalysis(resp.Text)
	if err != nil {
		return nil, err
	}
	a.Source = SourceModel
	return a, nil
}
