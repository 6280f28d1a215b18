package folder

import (
	"bytes"
	"fmt"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"

	"gopkg.in/yaml.v3"
)

// viewFrontmatter is the YAML header a markdown import may start with:
//
//	---
//	name: Chapter One
//	desc: First draft
//	icon: {ty: emoji, value: "📖"}
//	---
type viewFrontmatter struct {
	Name string           `yaml:"name"`
	Desc string           `yaml:"desc"`
	Icon *models.ViewIcon `yaml:"icon"`
}

var frontmatterDelim = []byte("---")

// splitFrontmatter separates a leading YAML header from a markdown body.
// Content without a header is returned unchanged with a nil header.
func splitFrontmatter(content []byte) (*viewFrontmatter, []byte, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content, nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, nil, &domain.ValidationError{Message: "missing closing frontmatter delimiter '---'"}
	}

	var fm viewFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &fm); err != nil {
		return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("invalid frontmatter: %v", err)}
	}
	if err := validateFrontmatter(&fm); err != nil {
		return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("invalid frontmatter: %v", err)}
	}
	return &fm, bytes.TrimLeft(bytes.Join(lines[closing+1:], []byte("\n")), "\r\n"), nil
}
