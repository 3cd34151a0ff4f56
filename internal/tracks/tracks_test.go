package tracks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tracks, err := Default()
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	ids := []string{tracks[0].ID, tracks[1].ID, tracks[2].ID}
	assert.Equal(t, []string{"job-1", "job-2", "job-3"}, ids)

	fe := tracks[0]
	assert.Equal(t, "Frontend Developer", fe.Title)
	assert.Equal(t, "Web Development", fe.Domain)
	require.Len(t, fe.RequiredSkills, 5)
	assert.Equal(t, "React", fe.RequiredSkills[0].Name)
	assert.Equal(t, 4, fe.RequiredSkills[0].MinLevel)

	assert.Equal(t, "Python", tracks[1].RequiredSkills[0].Name)
	assert.Equal(t, 5, tracks[1].RequiredSkills[0].MinLevel)
	assert.Equal(t, "Cloud & Infrastructure", tracks[2].Domain)
}

func TestLoad_DefaultsMinLevel(t *testing.T) {
	tracks, err := Load(strings.NewReader(`
tracks:
  - id: go
    title: Go Developer
    requiredSkills:
      - name: Go
      - {name: SQL, minLevel: 2}
`))
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 3, tracks[0].RequiredSkills[0].MinLevel)
	assert.Equal(t, 2, tracks[0].RequiredSkills[1].MinLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty",
			yaml:    "",
			wantErr: "catalog is empty",
		},
		{
			name:    "missing id",
			yaml:    "tracks:\n  - title: X\n",
			wantErr: "id is required",
		},
		{
			name:    "missing title",
			yaml:    "tracks:\n  - id: a\n",
			wantErr: "title is required",
		},
		{
			name:    "level too high",
			yaml:    "tracks:\n  - id: a\n    title: A\n    requiredSkills:\n      - {name: Go, minLevel: 6}\n",
			wantErr: "out of range",
		},
		{
			name:    "negative level",
			yaml:    "tracks:\n  - id: a\n    title: A\n    requiredSkills:\n      - {name: Go, minLevel: -1}\n",
			wantErr: "out of range",
		},
		{
			name:    "unnamed skill",
			yaml:    "tracks:\n  - id: a\n    title: A\n    requiredSkills:\n      - {minLevel: 2}\n",
			wantErr: "has no name",
		},
		{
			name:    "duplicate id",
			yaml:    "tracks:\n  - {id: a, title: A}\n  - {id: a, title: B}\n",
			wantErr: "duplicate track id",
		},
		{
			name:    "not yaml",
			yaml:    "tracks: [",
			wantErr: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracks:\n  - {id: x, title: X}\n"), 0o644))

	tracks, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "x", tracks[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
