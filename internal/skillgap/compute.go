package skillgap

import (
	"fmt"
	"math"
)

// Compute scores skills against the role's requirements.
//
// Each required skill contributes up to 20 points: the full 20 when the
// intern meets the minimum level, level/minLevel*20 when below it, and 0
// when the skill is missing. The similarity is the rounded ratio of points
// to the number of requirements, times 100, capped at 100. Gaps are
// reported in requirement order and truncated to MaxGaps.
func Compute(role RoleRequirement, skills []SkillRecord) (int, []SkillGap) {
	n := len(role.RequiredSkills)
	if n == 0 {
		return 0, []SkillGap{}
	}

	var matched float64
	gaps := make([]SkillGap, 0, n)

	for _, req := range role.RequiredSkills {
		minLevel := req.Level()

		current, ok := findSkill(skills, req.Name)
		if !ok {
			gaps = append(gaps, SkillGap{
				Skill:                    req.Name,
				CurrentLevel:             0,
				RequiredLevel:            minLevel,
				GapLevel:                 minLevel,
				Reason:                   "Skill not found in your current skill set",
				Priority:                 PriorityHigh,
				EstimatedImprovementTime: improvementTime(minLevel),
			})
			continue
		}

		if current.Level >= minLevel {
			matched += 20
			continue
		}

		gap := max(0, minLevel-current.Level)
		gaps = append(gaps, SkillGap{
			Skill:                    req.Name,
			CurrentLevel:             current.Level,
			RequiredLevel:            minLevel,
			GapLevel:                 gap,
			Reason:                   fmt.Sprintf("Need to improve from level %d to level %d", current.Level, minLevel),
			Priority:                 priorityFor(gap),
			EstimatedImprovementTime: improvementTime(gap),
		})
		matched += float64(current.Level) / float64(minLevel) * 20
	}

	similarity := min(100, int(math.Round(matched/float64(n)*100)))

	if len(gaps) > MaxGaps {
		gaps = gaps[:MaxGaps]
	}
	return similarity, gaps
}

func priorityFor(gap int) Priority {
	if gap >= 2 {
		return PriorityHigh
	}
	return PriorityMedium
}

func improvementTime(gap int) string {
	return fmt.Sprintf("%d weeks", gap*2)
}
