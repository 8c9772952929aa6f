package uploader_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploader/pkg/file"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// fakeFile is an in-memory handle with controllable genuineness and move outcome.
type fakeFile struct {
	field   string
	name    string
	content []byte
	forged  bool
	moveErr error
	moved   bool
	movedTo string
	openErr error
}

func (f *fakeFile) Field() string     { return f.field }
func (f *fakeFile) Name() string      { return f.name }
func (f *fakeFile) Size() int64       { return int64(len(f.content)) }
func (f *fakeFile) Extension() string { return file.Extension(f.name) }
func (f *fakeFile) IsUploaded() bool  { return !f.forged && !f.moved }

func (f *fakeFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func (f *fakeFile) MoveTo(path string) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	if f.moved {
		return file.ErrAlreadyMoved
	}
	if _, err := file.CopyTo(bytes.NewReader(f.content), path); err != nil {
		return err
	}
	f.moved = true
	f.movedTo = path
	return nil
}

func newFake(field, name string, content []byte) *fakeFile {
	return &fakeFile{field: field, name: name, content: content}
}

// multipartRequest builds a multipart POST with one file part per entry.
func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, parts...)
	req, err := http.NewRequest(http.MethodPost, "/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	return req
}

type part struct {
	field    string
	filename string
	content  []byte
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for _, p := range parts {
		w, err := writer.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = w.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}
