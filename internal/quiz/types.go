package quiz

// Difficulty grades a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// QuizItem is one multiple-choice question. CorrectAnswer indexes Options.
type QuizItem struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// QuizResult is the graded outcome of a quiz attempt. Answer indices are
// zero-based question positions.
type QuizResult struct {
	TotalQuestions   int      `json:"totalQuestions"`
	Score            int      `json:"score"`
	Percentage       float64  `json:"percentage"`
	CorrectAnswers   []int    `json:"correctAnswers"`
	IncorrectAnswers []int    `json:"incorrectAnswers"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Feedback         string   `json:"feedback,omitempty"`
}

// Session statuses derived from a quiz score.
const (
	StatusCompleted   = "COMPLETED"
	StatusNeedsReview = "NEEDS_REVIEW"
)

// PassingScore is the lowest score that completes a session.
const PassingScore = 6
