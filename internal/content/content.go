// Package content loads the portfolio records shown on the page and served
// by the API.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("content: not found")

// Details is the long-form part of a project or lab entry.
type Details struct {
	FullDescription string   `json:"fullDescription"`
	Features        []string `json:"features,omitempty"`
	Backend         string   `json:"backend,omitempty"`
	Frontend        string   `json:"frontend,omitempty"`
	Database        string   `json:"database,omitempty"`
	Other           string   `json:"other,omitempty"`
	Screenshots     []string `json:"screenshots,omitempty"`
}

// Project is a finished portfolio entry.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	LinkURL     string   `json:"linkUrl,omitempty"`
	Details     *Details `json:"details,omitempty"`
}

// Lab is an experiment or work-in-progress entry.
type Lab struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Details     *Details `json:"details,omitempty"`
}

// CV is a downloadable résumé in one language.
type CV struct {
	ID          string `json:"id"`
	Lang        string `json:"lang"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
}

// Store holds every record loaded from a content directory.
type Store struct {
	Projects []Project `json:"projects"`
	Labs     []Lab     `json:"labs"`
	CVs      []CV      `json:"cv"`
}

// Files read by Load, relative to the content directory.
const (
	ProjectsFile = "projects.json"
	LabsFile     = "labs.json"
	CVFile       = "cv.json"
)

// Load reads the record files in dir. Missing files yield empty lists.
func Load(dir string) (*Store, error) {
	s := &Store{}
	if err := readJSON(filepath.Join(dir, ProjectsFile), &s.Projects); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, LabsFile), &s.Labs); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, CVFile), &s.CVs); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) validate() error {
	seen := make(map[string]bool)
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		key := kind + "/" + id
		if seen[key] {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[key] = true
		return nil
	}
	for _, p := range s.Projects {
		if err := check("project", p.ID); err != nil {
			return err
		}
	}
	for _, l := range s.Labs {
		if err := check("lab", l.ID); err != nil {
			return err
		}
	}
	for _, c := range s.CVs {
		if err := check("cv", c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Project returns the project with id.
func (s *Store) Project(id string) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// Lab returns the lab entry with id.
func (s *Store) Lab(id string) (Lab, error) {
	for _, l := range s.Labs {
		if l.ID == id {
			return l, nil
		}
	}
	return Lab{}, fmt.Errorf("lab %q: %w", id, ErrNotFound)
}

// ProjectMarkdown formats a project as a markdown document.
func ProjectMarkdown(p Project) string {
	return document(p.Title, "", p.Description, p.Tags, p.Tech, p.LinkURL, p.Details)
}

// LabMarkdown formats a lab entry as a markdown document.
func LabMarkdown(l Lab) string {
	return document(l.Title, l.Status, l.Description, nil, l.Tech, "", l.Details)
}

func document(title, status, desc string, tags, tech []string, link string, d *Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if status != "" {
		fmt.Fprintf(&b, "_Status: %s_\n\n", status)
	}
	if len(tags) > 0 {
		fmt.Fprintf(&b, "`%s`\n\n", strings.Join(tags, "` `"))
	}
	if d != nil && d.FullDescription != "" {
		b.WriteString(d.FullDescription)
	} else {
		b.WriteString(desc)
	}
	b.WriteString("\n\n")
	if d != nil && len(d.Features) > 0 {
		b.WriteString("## Features\n\n")
		for _, f := range d.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}
	if d != nil {
		stack := [][2]string{
			{"Backend", d.Backend},
			{"Frontend", d.Frontend},
			{"Database", d.Database},
			{"Other", d.Other},
		}
		var rows []string
		for _, s := range stack {
			if s[1] != "" {
				rows = append(rows, fmt.Sprintf("| %s | %s |", s[0], s[1]))
			}
		}
		if len(rows) > 0 {
			b.WriteString("## Stack\n\n| Layer | Technology |\n| --- | --- |\n")
			b.WriteString(strings.Join(rows, "\n"))
			b.WriteString("\n\n")
		}
	}
	if len(tech) > 0 {
		fmt.Fprintf(&b, "**Tech:** %s\n\n", strings.Join(tech, ", "))
	}
	if link != "" {
		fmt.Fprintf(&b, "[Open project](%s)\n", link)
	}
	return b.String()
}
