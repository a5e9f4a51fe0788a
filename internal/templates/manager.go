// Package templates provides a template manager with dynamic reload support.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manager handles template loading and caching
type Manager struct {
	dir     string
	debug   bool
	cache   map[string]*template.Template
	mu      sync.RWMutex
	funcMap template.FuncMap
}

// NewManager creates a new template manager
// If debug is true, templates are reloaded on every request
// If debug is false, templates are cached in memory
func NewManager(dir string, debug bool) (*Manager, error) {
	cleanDir := filepath.Clean(dir)
	if _, err := os.Stat(cleanDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("template directory does not exist: %s", cleanDir)
	}

	m := &Manager{
		dir:   cleanDir,
		debug: debug,
		cache: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"formatBRL":      formatBRL,
			"formatBRLWhole": formatBRLWhole,
			"formatTemp":     formatTemp,
			"activeBadge":    activeBadge,
			"roleLabel":      roleLabel,
			"safeHTML":       safeHTML,
			"add":            add,
			"sub":            sub,
		},
	}

	if !debug {
		if err := m.loadTemplates(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// loadTemplates loads all templates from the directory
func (m *Manager) loadTemplates() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layoutPath := filepath.Join(m.dir, "layouts", "base.html")
	layoutContent, err := os.ReadFile(layoutPath)
	if err != nil {
		return fmt.Errorf("failed to read layout: %w", err)
	}

	pagesDir := filepath.Join(m.dir, "pages")
	err = filepath.Walk(pagesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		cleanPath := filepath.Clean(path)
		if !isSubPath(m.dir, cleanPath) {
			return fmt.Errorf("invalid template path detected: %s", path)
		}

		pageContent, err := os.ReadFile(cleanPath)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		relPath, err := filepath.Rel(m.dir, cleanPath)
		if err != nil {
			return err
		}
		templateName := filepath.ToSlash(relPath)

		tmpl := template.New("base").Funcs(m.funcMap)

		if _, err = tmpl.Parse(string(layoutContent)); err != nil {
			return fmt.Errorf("failed to parse layout for %s: %w", templateName, err)
		}
		if _, err = tmpl.Parse(string(pageContent)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", templateName, err)
		}

		m.cache[templateName] = tmpl
		return nil
	})

	return err
}

// Render renders a template with the given data
func (m *Manager) Render(w io.Writer, name string, data interface{}) error {
	if m.debug {
		// In debug mode, reload template on every request
		if err := m.loadSingle(name); err != nil {
			return fmt.Errorf("failed to reload templates: %w", err)
		}
	}

	m.mu.RLock()
	tmpl, ok := m.cache[name]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}

// loadSingle loads a single template (used in debug mode)
func (m *Manager) loadSingle(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layoutPath := filepath.Join(m.dir, "layouts", "base.html")
	layoutContent, err := os.ReadFile(layoutPath)
	if err != nil {
		return fmt.Errorf("failed to read layout: %w", err)
	}

	pagePath := filepath.Join(m.dir, name)
	pageContent, err := os.ReadFile(pagePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl := template.New("base").Funcs(m.funcMap)

	if _, err = tmpl.Parse(string(layoutContent)); err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}
	if _, err = tmpl.Parse(string(pageContent)); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	m.cache[name] = tmpl
	return nil
}

// isSubPath checks if child is a subpath of parent
func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return !filepath.IsAbs(rel) && rel != ".." && len(rel) > 0 && rel[0] != '.'
}

// Template helper functions

// formatBRL renders a quote as "R$ 5,12", or "--" when invalid.
func formatBRL(value float64, valid bool) string {
	if !valid {
		return "--"
	}
	s := fmt.Sprintf("%.2f", value)
	return "R$ " + strings.Replace(s, ".", ",", 1)
}

// formatBRLWhole renders a large quote as "R$ 350.000" with dot thousands
// separators, or "--" when invalid. Used for BTC/ETH.
func formatBRLWhole(value float64, valid bool) string {
	if !valid {
		return "--"
	}
	n := int64(value + 0.5)
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 && c != '-' {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "R$ " + b.String()
}

// formatTemp renders "23.4°C", or "--°C" when invalid.
func formatTemp(value float64, valid bool) string {
	if !valid {
		return "--°C"
	}
	return fmt.Sprintf("%.1f°C", value)
}

func activeBadge(active bool) string {
	if active {
		return "Ativo"
	}
	return "Inativo"
}

func roleLabel(role string) string {
	if role == "admin" {
		return "Administrador"
	}
	return "Editor"
}

func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}
