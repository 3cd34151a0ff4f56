package quiz

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You write multiple-choice assessments that check whether an intern understood what they studied. You answer with a JSON array only.`

func buildQuizUserMessage(task string, resources []string, questions int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate a %d-question MCQ quiz for task: %q.\n", questions, task))
	if len(resources) == 0 {
		b.WriteString("Resources studied: none listed.\n")
	} else {
		b.WriteString(fmt.Sprintf("Resources studied: %s.\n", strings.Join(resources, ", ")))
	}

	b.WriteString(`
Requirements:
1. Each question should test practical knowledge
2. Include 4 options per question
3. Mark the correct answer (0-3 index)
4. Include explanation for correct answer
5. Questions should range from basic to advanced

Return JSON array: [
  {
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Explanation of why this is correct",
    "difficulty": "Easy/Medium/Hard"
  }
]`)

	return b.String()
}
