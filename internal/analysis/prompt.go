package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/interntrack/interntrack/internal/skillgap"
)

const analysisSystemPrompt = `You are a technical mentor who assesses interns against the skills their role requires. You answer with JSON only.`

func buildAnalysisUserMessage(role skillgap.RoleRequirement, skills []skillgap.SkillRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Perform a detailed skill gap analysis for the role: %s.\n\n", role.Title))

	b.WriteString("ROLE REQUIREMENTS:\n")
	b.WriteString(fmt.Sprintf("- Job Description: %s\n", role.Description))
	b.WriteString(fmt.Sprintf("- Required Skills (with minimum levels): %s\n\n", indentJSON(role.RequiredSkills)))

	b.WriteString("INTERN'S CURRENT SKILLS:\n")
	b.WriteString(indentJSON(skills))
	b.WriteString("\n")

	b.WriteString(`
Provide a comprehensive analysis including:
1. Similarity percentage (0-100)
2. Identified skill gaps with detailed explanations
3. Learning roadmap with priorities
4. EXACTLY 5 REAL working YouTube video links (beginner to advanced)
5. EXACTLY 5 REAL documentation links (official documentation, tutorials, guides)

IMPORTANT: All URLs MUST be real, working links starting with http. Do not make up URLs.

Return JSON with this exact structure:
{
  "similarity": 75,
  "gaps": [
    {
      "skill": "skill_name",
      "currentLevel": 2,
      "requiredLevel": 4,
      "gapLevel": 2,
      "reason": "Detailed explanation of the gap",
      "priority": "HIGH/MEDIUM/LOW",
      "estimatedImprovementTime": "4 weeks"
    }
  ],
  "recommendations": {
    "videos": [
      {"title": "Video title", "url": "https://www.youtube.com/watch?v=...", "duration": "1:30:00", "level": "Beginner/Intermediate/Advanced", "description": "Brief description"}
    ],
    "documentation": [
      {"title": "Documentation title", "url": "https://official-docs.com/...", "type": "Official Docs/Tutorial/Guide", "description": "Brief description"}
    ]
  },
  "learningPath": [
    {"week": 1, "focus": "Topic to focus on", "resources": ["Resource 1", "Resource 2"], "milestone": "What to achieve"}
  ]
}`)

	return b.String()
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}
