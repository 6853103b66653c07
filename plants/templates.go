package plants

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/nikolalohinski/gonja"
	"github.com/pkg/errors"
)

// Names of the templates used by the commands.
const (
	ParametersTemplate  = "parameters.rgg.template"
	ModelConfigTemplate = "model.config.template"
	ModelSDFTemplate    = "model.sdf.template"
)

//go:embed templates/*.template
var builtinTemplates embed.FS

// Templates renders Jinja templates by name.
//
// A template is read from Dir when a file of that name exists there, and
// from the built-in templates otherwise. Undefined variables render as
// empty strings, like in Jinja.
type Templates struct {
	Dir string
}

// Source gets the raw text of a template.
func (t *Templates) Source(name string) ([]byte, error) {
	if t != nil && t.Dir != "" {
		data, err := os.ReadFile(filepath.Join(t.Dir, name))
		if err == nil {
			return data, nil
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read template")
		}
	}
	data, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return nil, errors.Wrap(err, "read template")
	}
	return data, nil
}

// Render executes a template with the given variables.
func (t *Templates) Render(name string, vars map[string]interface{}) ([]byte, error) {
	source, err := t.Source(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := gonja.FromBytes(source)
	if err != nil {
		return nil, errors.Wrapf(err, "parse template %s", name)
	}
	out, err := tmpl.Execute(gonja.Context(vars))
	if err != nil {
		return nil, errors.Wrapf(err, "render template %s", name)
	}
	return []byte(out), nil
}

// RenderFile executes a template and writes the result to path, replacing
// any existing file.
func (t *Templates) RenderFile(path, name string, vars map[string]interface{}) error {
	data, err := t.Render(name, vars)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write rendered template")
}
