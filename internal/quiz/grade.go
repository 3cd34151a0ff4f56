package quiz

import "fmt"

// Grade scores answers (question index to chosen option index) against
// items. Unanswered questions count as neither correct nor incorrect.
// Strengths and weaknesses name the first two correct and incorrect
// questions as "Q<n>", counting from 1.
func Grade(items []QuizItem, answers map[int]int) QuizResult {
	r := QuizResult{
		TotalQuestions:   len(items),
		CorrectAnswers:   []int{},
		IncorrectAnswers: []int{},
		Strengths:        []string{},
		Weaknesses:       []string{},
	}

	for i, item := range items {
		chosen, ok := answers[i]
		if !ok {
			continue
		}
		if chosen == item.CorrectAnswer {
			r.Score++
			r.CorrectAnswers = append(r.CorrectAnswers, i)
		} else {
			r.IncorrectAnswers = append(r.IncorrectAnswers, i)
		}
	}

	if r.TotalQuestions > 0 {
		r.Percentage = float64(r.Score) / float64(r.TotalQuestions) * 100
	}
	r.Strengths = questionLabels(r.CorrectAnswers, 2)
	r.Weaknesses = questionLabels(r.IncorrectAnswers, 2)
	return r
}

// StatusFor maps a quiz score to a session status.
func StatusFor(score int) string {
	if score >= PassingScore {
		return StatusCompleted
	}
	return StatusNeedsReview
}

func questionLabels(indices []int, limit int) []string {
	labels := []string{}
	for _, i := range indices {
		if len(labels) == limit {
			break
		}
		labels = append(labels, fmt.Sprintf("Q%d", i+1))
	}
	return labels
}
