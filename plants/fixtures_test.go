package plants

import (
	"os"
	"path/filepath"
	"testing"
)

// artifactOBJ is a unit square standing in for the GroIMP reference object.
const artifactOBJ = `# artifact
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
f 1 2 3
f 1 3 4
`

// plantOBJ is the artifact followed by a small plant whose ground contact is
// (0.52, 1, 0.5), with one low outlier vertex at x=0.9.
const plantOBJ = `# combined export
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
v 0.50 1.0 0.5
v 0.52 1.0 0.5
v 0.54 1.0 0.5
v 0.52 1.5 0.5
v 0.90 1.01 0.5
vt 0 0
vn 0 1 0
f 1 2 3
f 1 3 4
f 5/1/1 7/1/1 8/1/1
f 6 7 8
f 7 9 8
f 4 5 8
`

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
