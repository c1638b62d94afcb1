// Package markdown reads and writes journal notes: a yaml frontmatter header
// followed by a free-form body that may hold generated blocks.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fence     = "---\n"
	closeRule = "\n---\n"
)

// Note is a parsed markdown document. Meta keeps unknown keys so a rewrite
// never drops what a user added by hand.
type Note struct {
	Meta map[string]any
	Body string
}

// ParseNote splits content into frontmatter and body. Content without a
// leading fence is all body.
func ParseNote(content string) (Note, error) {
	if !strings.HasPrefix(content, fence) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence):]
	if strings.HasPrefix(rest, fence) {
		return Note{Meta: map[string]any{}, Body: rest[len(fence):]}, nil
	}
	idx := strings.Index(rest, closeRule)
	if idx < 0 {
		return Note{}, fmt.Errorf("frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Note{}, fmt.Errorf("frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Note{Meta: meta, Body: rest[idx+len(closeRule):]}, nil
}

// Set overwrites the given frontmatter keys and leaves the others alone.
func (n *Note) Set(values map[string]any) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	for k, v := range values {
		n.Meta[k] = v
	}
}

// Render writes the note back out. yaml.v3 sorts map keys, so the output is
// stable across runs.
func (n Note) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence)
	if len(n.Meta) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(n.Meta); err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
	}
	buf.WriteString(fence)
	if !strings.HasPrefix(n.Body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}
