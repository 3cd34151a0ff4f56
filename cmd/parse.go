package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/skillgap"
)

// parseSkills reads repeated Name=Level flags, e.g. "React=3".
func parseSkills(values []string) ([]skillgap.SkillRecord, error) {
	skills := make([]skillgap.SkillRecord, 0, len(values))
	for _, v := range values {
		name, level, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid skill %q: want Name=Level", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(level))
		if err != nil {
			return nil, fmt.Errorf("invalid skill %q: level must be an integer", v)
		}
		skills = append(skills, skillgap.SkillRecord{Name: name, Level: n})
	}
	return skills, nil
}

// parseAnswers reads a comma-separated list of chosen option indices, one
// per question in order. "-" or an empty entry leaves a question unanswered.
func parseAnswers(s string) (map[int]int, error) {
	answers := make(map[int]int)
	if strings.TrimSpace(s) == "" {
		return answers, nil
	}
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid answer %q for question %d", part, i+1)
		}
		answers[i] = n
	}
	return answers, nil
}

// readQuizFile loads a quiz written by "quiz --json".
func readQuizFile(path string) ([]quiz.QuizItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	var items []quiz.QuizItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse quiz %s: %w", path, err)
	}
	return items, nil
}
