package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"folio/internal/domain"
	folderSvc "folio/internal/domain/services/folder"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter turns imported bytes into the markdown body of a document
type Converter interface {
	Convert(ctx context.Context, input []byte) (string, error)
}

// ConverterFunc adapts a function to Converter
type ConverterFunc func(ctx context.Context, input []byte) (string, error)

// Convert calls f
func (f ConverterFunc) Convert(ctx context.Context, input []byte) (string, error) {
	return f(ctx, input)
}

// passthrough serves markdown and plain text, which are stored as-is
var passthrough = ConverterFunc(func(ctx context.Context, input []byte) (string, error) {
	return string(input), nil
})

// htmlConverter sanitizes HTML, then converts it to markdown
type htmlConverter struct {
	sanitizer *htmlSanitizer
	converter *md.Converter
}

func newHTMLConverter() *htmlConverter {
	return &htmlConverter{
		sanitizer: newHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (string, error) {
	markdown, err := c.converter.ConvertString(c.sanitizer.Sanitize(string(input)))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}

// Converters routes import types and file extensions to converters.
//
// Thread-safe for concurrent access.
type Converters struct {
	mu         sync.RWMutex
	converters map[folderSvc.ImportType]Converter
	extensions map[string]folderSvc.ImportType // key: lowercase extension with leading dot
}

// NewConverters creates a registry with the plain text, markdown and HTML converters
func NewConverters() *Converters {
	c := &Converters{
		converters: make(map[folderSvc.ImportType]Converter),
		extensions: make(map[string]folderSvc.ImportType),
	}
	c.Register(folderSvc.ImportTypePlainText, passthrough, ".txt", ".text")
	c.Register(folderSvc.ImportTypeMarkdown, passthrough, ".md", ".markdown")
	c.Register(folderSvc.ImportTypeHTML, newHTMLConverter(), ".html", ".htm")
	return c
}

// Register associates a converter with an import type and its file extensions
func (c *Converters) Register(importType folderSvc.ImportType, converter Converter, extensions ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.converters[importType] = converter
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.extensions[ext] = importType
	}
}

// ImportTypeForFile returns the import type registered for the file's extension
func (c *Converters) ImportTypeForFile(filename string) (folderSvc.ImportType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	importType, ok := c.extensions[strings.ToLower(filepath.Ext(filename))]
	return importType, ok
}

// Convert converts input of the given import type to markdown
func (c *Converters) Convert(ctx context.Context, importType folderSvc.ImportType, input []byte) (string, error) {
	c.mu.RLock()
	converter, ok := c.converters[importType]
	c.mu.RUnlock()
	if !ok {
		return "", &domain.ValidationError{Message: fmt.Sprintf("cannot import %s into a document", importType)}
	}
	return converter.Convert(ctx, input)
}
