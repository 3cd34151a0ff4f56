package analysis

import "github.com/interntrack/interntrack/internal/skillgap"

// Fallback builds an Analysis without the model: computed gaps and
// similarity plus a fixed set of general web development resources.
func Fallback(role skillgap.RoleRequirement, skills []skillgap.SkillRecord) *Analysis {
	similarity, gaps := skillgap.Compute(role, skills)
	return &Analysis{
		Similarity: similarity,
		Gaps:       gaps,
		Recommendations: Recommendations{
			Videos:        fallbackVideos(),
			Documentation: fallbackDocs(),
		},
		LearningPath: fallbackLearningPath(),
		Source:       SourceFallback,
	}
}

func fallbackVideos() []VideoRef {
	return []VideoRef{
		{
			Title:       "React Tutorial for Beginners",
			URL:         "https://www.youtube.com/watch?v=Ke90Tje7VS0",
			Duration:    "2:15:00",
			Level:       "Beginner",
			Description: "Complete React tutorial from scratch",
		},
		{
			Title:       "TypeScript Crash Course",
			URL:         "https://www.youtube.com/watch?v=BCg4U1FzODs",
			Duration:    "1:45:00",
			Level:       "Intermediate",
			Description: "Learn TypeScript fundamentals",
		},
		{
			Title:       "Advanced React Patterns",
			URL:         "https://www.youtube.com/watch?v=DPbSf8vQWLo",
			Duration:    "1:30:00",
			Level:       "Advanced",
			Description: "Advanced React concepts and patterns",
		},
		{
			Title:       "Modern JavaScript Tutorial",
			URL:         "https://www.youtube.com/watch?v=iLWTnMzWtj4",
			Duration:    "3:20:00",
			Level:       "Beginner",
			Description: "Complete JavaScript tutorial",
		},
		{
			Title:       "CSS Grid & Flexbox Masterclass",
			URL:         "https://www.youtube.com/watch?v=RSIclWvNTdQ",
			Duration:    "2:00:00",
			Level:       "Intermediate",
			Description: "Modern CSS layout techniques",
		},
	}
}

func fallbackDocs() []DocRef {
	return []DocRef{
		{
			Title:       "React Official Documentation",
			URL:         "https://react.dev/learn",
			Type:        "Official Docs",
			Description: "Official React documentation and tutorials",
		},
		{
			Title:       "TypeScript Handbook",
			URL:         "https://www.typescriptlang.org/docs/",
			Type:        "Official Docs",
			Description: "Complete TypeScript documentation",
		},
		{
			Title:       "MDN Web Docs",
			URL:         "https://developer.mozilla.org/en-US/",
			Type:        "Reference",
			Description: "Web technology references and guides",
		},
		{
			Title:       "JavaScript Info",
			URL:         "https://javascript.info/",
			Type:        "Tutorial",
			Description: "Modern JavaScript tutorial",
		},
		{
			Title:       "Frontend Developer Roadmap",
			URL:         "https://roadmap.sh/frontend",
			Type:        "Guide",
			Description: "Step-by-step frontend development guide",
		},
	}
}

func fallbackLearningPath() []WeekPlan {
	return []WeekPlan{
		{
			Week:      1,
			Focus:     "React Fundamentals",
			Resources: []string{"React Docs", "Video Tutorials"},
			Milestone: "Build basic React components",
		},
		{
			Week:      2,
			Focus:     "TypeScript Integration",
			Resources: []string{"TypeScript Handbook", "Practice Projects"},
			Milestone: "Type-safe React components",
		},
	}
}
