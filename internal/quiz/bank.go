package quiz

import "strings"

// Keywords that route a task to a static bank. Matching is substring
// containment on the lower-cased task, so "ui" also matches "build".
var (
	reactKeywords  = []string{"react", "frontend", "ui"}
	pythonKeywords = []string{"python", "ml", "ai"}
)

// FallbackQuiz returns the static question bank for task. Tasks matching
// no keyword get the React bank.
func FallbackQuiz(task string) []QuizItem {
	lower := strings.ToLower(task)
	switch {
	case containsAny(lower, reactKeywords):
		return reactBank()
	case containsAny(lower, pythonKeywords):
		return pythonBank()
	default:
		return reactBank()
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func reactBank() []QuizItem {
	return []QuizItem{
		{
			Question: "What is the primary purpose of React?",
			Options: []string{
				"Building user interfaces",
				"Database management",
				"Server-side rendering only",
				"Mobile app development without JavaScript",
			},
			CorrectAnswer: 0,
			Explanation:   "React is a JavaScript library for building user interfaces, particularly for single-page applications.",
			Difficulty:    Easy,
		},
		{
			Question: "Which hook is used for state management in functional components?",
			Options: []string{
				"useState",
				"useEffect",
				"useContext",
				"All of the above",
			},
			CorrectAnswer: 0,
			Explanation:   "useState is specifically designed for state management in functional components.",
			Difficulty:    Easy,
		},
	}
}

func pythonBank() []QuizItem {
	return []QuizItem{
		{
			Question: "What is a Python decorator?",
			Options: []string{
				"A function that modifies another function",
				"A special type of variable",
				"A class method",
				"An import statement",
			},
			CorrectAnswer: 0,
			Explanation:   "A decorator is a function that takes another function and extends its behavior without modifying it.",
			Difficulty:    Medium,
		},
	}
}
