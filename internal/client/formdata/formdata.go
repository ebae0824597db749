// Package formdata builds multipart/form-data request bodies for the API
// calls that upload images.
package formdata

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// File is an in-memory upload.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// LoadFile reads the file at path. The content type is sniffed from the
// first bytes.
func LoadFile(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read upload %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(content),
		Content:     content,
	}, nil
}

// Form accumulates fields and files. The first write error sticks and is
// returned by Encode.
type Form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func New() *Form {
	f := &Form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// Field appends a text field.
func (f *Form) Field(name, value string) *Form {
	if f.err == nil {
		f.err = f.w.WriteField(name, value)
	}
	return f
}

// OptionalField appends the field only when value is not blank.
func (f *Form) OptionalField(name, value string) *Form {
	if strings.TrimSpace(value) == "" {
		return f
	}
	return f.Field(name, value)
}

// Fields appends one field per value under the same name.
func (f *Form) Fields(name string, values []string) *Form {
	for _, v := range values {
		f.Field(name, v)
	}
	return f
}

// File appends a file part. Nil files are skipped.
func (f *Form) File(name string, file *File) *Form {
	if f.err != nil || file == nil {
		return f
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(name), escapeQuotes(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = io.Copy(part, bytes.NewReader(file.Content))
	return f
}

// Files appends every file under the same name.
func (f *Form) Files(name string, files []File) *Form {
	for i := range files {
		f.File(name, &files[i])
	}
	return f
}

// Encode closes the form and returns the body with its Content-Type,
// boundary included.
func (f *Form) Encode() ([]byte, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("build form: %w", f.err)
	}
	if err := f.w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return f.buf.Bytes(), f.w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
