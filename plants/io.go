package plants

import (
	"bufio"
	"io"
	"os"
)

// Load opens the file at path and decodes it with reader.
func Load[T any](path string, reader func(r io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return reader(bufio.NewReader(f))
}

// Save creates (or truncates) the file at path and encodes obj into it with
// writer.
func Save[T any](path string, obj T, writer func(w io.Writer, obj T) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := writer(w, obj); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
