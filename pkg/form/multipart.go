package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
)

// EncodeMultipart writes values and the files at the given paths into a
// multipart/form-data body. It returns the body and its content type.
func EncodeMultipart(values, files map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, name := range sortedKeys(values) {
		if err := w.WriteField(name, values[name]); err != nil {
			return nil, "", fmt.Errorf("form: write field %s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(files) {
		if err := attach(w, name, files[name]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("form: close multipart: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

func attach(w *multipart.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("form: open %s: %w", name, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("form: create part %s: %w", name, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("form: copy %s: %w", name, err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
