package plants

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTemplatesBuiltin(t *testing.T) {
	templates := &Templates{}
	data, err := templates.Render(ModelSDFTemplate, map[string]interface{}{
		"model_name":    "plant_day_025",
		"mesh_file":     "plant_day_025.dae",
		"plant_height":  0.1,
		"center_height": 0.05,
		"mass":          0.2,
		"radius":        0.3,
	})
	if err != nil {
		t.Fatal(err)
	}
	sdf := string(data)
	for _, expected := range []string{
		`<model name="plant_day_025">`,
		"<mass>0.2</mass>",
		"<length>0.1</length>",
		"<radius>0.3</radius>",
		"model://plant_day_025/meshes/plant_day_025.dae",
	} {
		if !strings.Contains(sdf, expected) {
			t.Errorf("expected %q in output:\n%s", expected, sdf)
		}
	}

	data, err = templates.Render(ParametersTemplate, map[string]interface{}{
		"output_path": "/tmp/maize_002",
		"crop_type":   "maize",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"/tmp/maize_002/"`) || !strings.Contains(string(data), `"maize"`) {
		t.Fatalf("unexpected parameters:\n%s", data)
	}
}

func TestTemplatesUndefinedVariable(t *testing.T) {
	templates := &Templates{}
	data, err := templates.Render(ModelConfigTemplate, map[string]interface{}{"mass": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<name></name>") {
		t.Fatalf("expected empty model name in output:\n%s", data)
	}
}

func TestTemplatesFiltersAndBlocks(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ModelSDFTemplate),
		"<mass>{{ mass | round(3) }}</mass>"+
			"{% if plant_height > 0.2 %}tall{% else %}short{% endif %}"+
			"{% for c in colors %}[{{ c | upper }}]{% endfor %}")
	templates := &Templates{Dir: dir}

	for height, expected := range map[float64]string{
		0.5: "<mass>0.123</mass>tall[R][G]",
		0.1: "<mass>0.123</mass>short[R][G]",
	} {
		data, err := templates.Render(ModelSDFTemplate, map[string]interface{}{
			"mass":         0.12345,
			"plant_height": height,
			"colors":       []string{"r", "g"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if actual := strings.TrimSpace(string(data)); actual != expected {
			t.Errorf("height %v: expected %q but got %q", height, expected, actual)
		}
	}

	writeTestFile(t, filepath.Join(dir, ModelConfigTemplate), "{% if %}")
	if _, err := templates.Render(ModelConfigTemplate, nil); err == nil {
		t.Fatal("expected error for malformed template")
	}
}

func TestTemplatesOverride(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ModelConfigTemplate), "name={{ model_name }}")
	templates := &Templates{Dir: dir}

	out := filepath.Join(dir, "model.config")
	err := templates.RenderFile(out, ModelConfigTemplate, map[string]interface{}{"model_name": "x"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "name=x" {
		t.Fatalf("unexpected output: %q", data)
	}

	// Templates missing from the directory fall back to the built-in ones.
	data, err = templates.Render(ModelSDFTemplate, map[string]interface{}{
		"model_name":    "x",
		"mesh_file":     "x.dae",
		"plant_height":  1.0,
		"center_height": 0.5,
		"mass":          1.0,
		"radius":        0.1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<sdf") {
		t.Fatalf("unexpected output:\n%s", data)
	}

	if _, err := templates.Render("missing.template", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
