package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestLoadRepositoryContent(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "content"))
	require.NoError(t, err)
	assert.NotEmpty(t, s.Projects)
	assert.NotEmpty(t, s.Labs)
	assert.Len(t, s.CVs, 2)

	p, err := s.Project("geocommunity")
	require.NoError(t, err)
	assert.Equal(t, "GeoCommunity", p.Title)
	require.NotNil(t, p.Details)
	assert.NotEmpty(t, p.Details.Features)
}

func TestLoadMissingFiles(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.Projects)
	assert.Empty(t, s.Labs)
	assert.Empty(t, s.CVs)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		data  string
		match string
	}{
		{"bad json", ProjectsFile, `{`, "parse projects.json"},
		{"empty id", LabsFile, `[{"title": "x"}]`, "empty id"},
		{"duplicate", ProjectsFile, `[{"id": "a"}, {"id": "a"}]`, "duplicate project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.data)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.match)
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	s := &Store{}
	_, err := s.Project("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Lab("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectMarkdown(t *testing.T) {
	md := ProjectMarkdown(Project{
		Title:       "Demo",
		Tags:        []string{"Web", "CLI"},
		Description: "short",
		Tech:        []string{"Go"},
		LinkURL:     "https://example.com",
		Details: &Details{
			FullDescription: "long form",
			Features:        []string{"one", "two"},
			Backend:         "chi",
		},
	})
	assert.Contains(t, md, "# Demo")
	assert.Contains(t, md, "`Web` `CLI`")
	assert.Contains(t, md, "long form")
	assert.NotContains(t, md, "short")
	assert.Contains(t, md, "- two")
	assert.Contains(t, md, "| Backend | chi |")
	assert.NotContains(t, md, "Frontend")
	assert.Contains(t, md, "[Open project](https://example.com)")
}

func TestLabMarkdown(t *testing.T) {
	md := LabMarkdown(Lab{Title: "Exp", Status: "prototype", Description: "desc"})
	assert.Contains(t, md, "_Status: prototype_")
	assert.Contains(t, md, "desc")
	assert.NotContains(t, md, "## Stack")
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer("notty", 60)
	require.NoError(t, err)
	out, err := r.Render(LabMarkdown(Lab{Title: "Exp", Description: "desc"}))
	require.NoError(t, err)
	assert.Contains(t, out, "Exp")
	assert.Contains(t, out, "desc")
}
