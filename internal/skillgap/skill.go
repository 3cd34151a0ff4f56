package skillgap

import "strings"

// DefaultMinLevel applies to a required skill that carries no explicit level.
const DefaultMinLevel = 3

// MaxGaps bounds the number of gaps a computation reports.
const MaxGaps = 5

// Priority ranks how urgently a gap should be closed.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// RequiredSkill is one skill a role asks for, with the minimum level (1-5).
type RequiredSkill struct {
	Name     string `json:"name" yaml:"name"`
	MinLevel int    `json:"minLevel,omitempty" yaml:"minLevel,omitempty"`
}

// Level returns the effective minimum level, applying DefaultMinLevel when unset.
func (r RequiredSkill) Level() int {
	if r.MinLevel <= 0 {
		return DefaultMinLevel
	}
	return r.MinLevel
}

// RoleRequirement describes a track: the role an intern is trained for.
type RoleRequirement struct {
	ID             string          `json:"id" yaml:"id"`
	Title          string          `json:"title" yaml:"title"`
	Domain         string          `json:"domain,omitempty" yaml:"domain"`
	Description    string          `json:"description" yaml:"description"`
	RequiredSkills []RequiredSkill `json:"requiredSkills" yaml:"requiredSkills"`
}

// SkillRecord is a self-reported skill with a level from 0 to 5.
type SkillRecord struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

// SkillGap describes the distance between a current and a required level.
type SkillGap struct {
	Skill                    string   `json:"skill"`
	CurrentLevel             int      `json:"currentLevel"`
	RequiredLevel            int      `json:"requiredLevel"`
	GapLevel                 int      `json:"gapLevel"`
	Reason                   string   `json:"reason"`
	Priority                 Priority `json:"priority"`
	EstimatedImprovementTime string   `json:"estimatedImprovementTime"`
}

// findSkill returns the first skill whose name equals name, ignoring case.
func findSkill(skills []SkillRecord, name string) (SkillRecord, bool) {
	for _, s := range skills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SkillRecord{}, false
}
