// Package template wraps the pongo2 engine behind an explicit renderer value
// bound to a search-root directory.
package template

import (
	"fmt"
	"path/filepath"

	"github.com/flosch/pongo2/v6"
)

// Renderer resolves template files relative to a fixed base directory.
type Renderer struct {
	set *pongo2.TemplateSet
}

// New returns a renderer whose loader is rooted at baseDir.
func New(baseDir string) (*Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
	if err != nil {
		return nil, fmt.Errorf("template: create loader for %q: %w", baseDir, err)
	}
	return &Renderer{set: pongo2.NewSet("lmscene", loader)}, nil
}

// NewForFile splits path into directory and file name, returning a renderer
// rooted at the directory and the template name to render from it.
func NewForFile(path string) (*Renderer, string, error) {
	r, err := New(filepath.Dir(path))
	if err != nil {
		return nil, "", err
	}
	return r, filepath.Base(path), nil
}

// RenderFile loads the named template from the base directory and renders it
// against ctx.
func (r *Renderer) RenderFile(name string, ctx map[string]any) (string, error) {
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("template: load %q: %w", name, err)
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("template: execute %q: %w", name, err)
	}
	return out, nil
}

// RenderString renders inline template source against ctx. Path expressions
// and pass-through arguments go through here; they have no search root.
func RenderString(src string, ctx map[string]any) (string, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", fmt.Errorf("template: parse %q: %w", src, err)
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("template: execute %q: %w", src, err)
	}
	return out, nil
}
