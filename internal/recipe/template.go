package recipe

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateName is the recipe template filename, looked up in the project
// templates directory with the embedded default as fallback.
const TemplateName = "Dockerfile.tmpl"

//go:embed templates/Dockerfile.tmpl
var defaultTemplates embed.FS

// DefaultTemplate returns the embedded default recipe template source.
func DefaultTemplate() string {
	data, err := defaultTemplates.ReadFile("templates/" + TemplateName)
	if err != nil {
		// The template is compiled into the binary; a read failure is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return string(data)
}

// loadTemplateSource returns the template source, preferring a project-level
// override in templatesDir over the embedded default.
func loadTemplateSource(templatesDir string) (string, error) {
	if templatesDir != "" {
		path := filepath.Join(templatesDir, TemplateName)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template %s: %w", path, err)
		}
	}

	return DefaultTemplate(), nil
}

// newEngine creates the recipe template engine with sprig and kiln functions.
func newEngine(name string) *template.Template {
	return template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Funcs(recipeFuncs())
}

// recipeFuncs returns custom template functions for recipe templates.
func recipeFuncs() template.FuncMap {
	return template.FuncMap{
		// packageArgs joins package names with shell line continuations so
		// install steps stay readable in the rendered recipe.
		"packageArgs": func(packages []string) string {
			return strings.Join(packages, " \\\n    ")
		},
	}
}
