package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interntrack/interntrack/internal/skillgap"
)

func TestParseSkills(t *testing.T) {
	skills, err := parseSkills([]string{"React=3", " Machine Learning = 2 "})
	require.NoError(t, err)
	assert.Equal(t, []skillgap.SkillRecord{
		{Name: "React", Level: 3},
		{Name: "Machine Learning", Level: 2},
	}, skills)

	for _, bad := range []string{"React", "=3", "React=high"} {
		_, err := parseSkills([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		in   string
		want map[int]int
	}{
		{"", map[int]int{}},
		{"0,2,1", map[int]int{0: 0, 1: 2, 2: 1}},
		{"1,-,3", map[int]int{0: 1, 2: 3}},
		{"1,,3", map[int]int{0: 1, 2: 3}},
	}
	for _, tt := range tests {
		got, err := parseAnswers(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseAnswers("1,x")
	assert.Error(t, err)
	_, err = parseAnswers("-2")
	assert.Error(t, err)
}

func TestReadQuizFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"question":"Q?","options":["a","b"],"correctAnswer":1}]`), 0o644))

	items, err := readQuizFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].CorrectAnswer)

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	_, err = readQuizFile(path)
	assert.Error(t, err)
}
