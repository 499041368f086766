// Where: internal/scaffold/scaffold.go
// What: Render Dockerfile, emcp.yaml, and .env.example into a project.
// Why: Give `emcp init` the same templated outputs the original image relied on.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// Data feeds the scaffold templates.
type Data struct {
	Image         string
	Container     string
	Port          int
	PythonVersion string
	IndexURL      string
	GCPProject    string
	AppModule     string
	User          string
}

// FileResult reports what happened to one scaffolded file.
type FileResult struct {
	Path    string
	Skipped bool // file already existed and was left untouched
}

var outputs = []struct {
	template string
	file     string
}{
	{"dockerfile.tmpl", "Dockerfile"},
	{"emcp.yaml.tmpl", "emcp.yaml"},
	{"env.example.tmpl", ".env.example"},
}

// Render writes the scaffold files into dir. Existing files are never
// overwritten; they are reported as skipped instead.
func Render(dir string, data Data) ([]FileResult, error) {
	if data.Port == 0 {
		data.Port = 8000
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	results := make([]FileResult, 0, len(outputs))
	for _, output := range outputs {
		path := filepath.Join(dir, output.file)
		if _, err := os.Stat(path); err == nil {
			results = append(results, FileResult{Path: path, Skipped: true})
			continue
		}

		content, err := renderTemplate(output.template, data)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		results = append(results, FileResult{Path: path})
	}
	return results, nil
}

func renderTemplate(name string, data Data) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if cached, ok := templateCache.Load(name); ok {
		return cached.(*template.Template), nil
	}
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
