package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// playbookMeta is the YAML frontmatter structure of a playbook .md file.
type playbookMeta struct {
	Description string `yaml:"description"`
	Always      bool   `yaml:"always"`
}

// Playbook is a reusable instruction document loaded from the playbooks
// directory. The markdown body (frontmatter stripped) is what gets injected
// into the system prompt.
type Playbook struct {
	Name        string
	Description string
	Always      bool
	Body        string
}

// PlaybookLoader reads markdown playbooks from a directory. Each *.md file is
// one playbook; an optional YAML frontmatter block carries its metadata.
type PlaybookLoader struct {
	dir string
}

// NewPlaybookLoader creates a PlaybookLoader rooted at dir.
func NewPlaybookLoader(dir string) *PlaybookLoader {
	return &PlaybookLoader{dir: dir}
}

// List returns all playbooks in the directory, sorted by name. A missing
// directory is not an error; it just yields no playbooks.
func (pl *PlaybookLoader) List() []Playbook {
	entries, err := os.ReadDir(pl.dir)
	if err != nil {
		return nil
	}

	var playbooks []Playbook
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(pl.dir, e.Name()))
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".md")
		meta := parseFrontmatter(string(data))
		playbooks = append(playbooks, Playbook{
			Name:        name,
			Description: meta.Description,
			Always:      meta.Always,
			Body:        stripFrontmatter(string(data)),
		})
	}

	sort.Slice(playbooks, func(i, j int) bool { return playbooks[i].Name < playbooks[j].Name })
	return playbooks
}

// SystemPromptSection renders the always-on playbooks as a block for the
// system prompt. Returns "" when nothing applies.
func (pl *PlaybookLoader) SystemPromptSection() string {
	var parts []string
	for _, p := range pl.List() {
		if !p.Always || p.Body == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("### Playbook: %s\n\n%s", p.Name, p.Body))
	}
	if len(parts) == 0 {
		return ""
	}
	return "## Playbooks\n\n" + strings.Join(parts, "\n\n---\n\n")
}

// parseFrontmatter parses the leading --- ... --- YAML block, if any.
func parseFrontmatter(content string) playbookMeta {
	if !strings.HasPrefix(content, "---") {
		return playbookMeta{}
	}
	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return playbookMeta{}
	}
	var m playbookMeta
	_ = yaml.Unmarshal([]byte(rest[:end]), &m)
	return m
}

// stripFrontmatter removes the leading --- ... --- YAML block from markdown.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return strings.TrimSpace(content)
	}
	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(rest[end+4:])
}
