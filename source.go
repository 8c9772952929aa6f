package uploader

import (
	"io"
	"net/http"

	"github.com/dmitrymomot/uploader/pkg/file"
)

// File is an uploaded-file handle. *file.Upload and *file.Local implement it.
type File interface {
	Field() string
	Name() string
	Size() int64
	// Extension is lower-case without the leading dot.
	Extension() string
	// IsUploaded reports whether the handle is a genuine upload.
	IsUploaded() bool
	Open() (io.ReadCloser, error)
	// MoveTo is one-time: on success the source is consumed, on failure it
	// is left untouched.
	MoveTo(path string) error
}

// Source enumerates the files of one upload.
type Source interface {
	Files() ([]File, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() ([]File, error)

func (fn SourceFunc) Files() ([]File, error) { return fn() }

// FromRequest returns a Source reading the multipart files of r.
// A non-positive maxMemory uses file.DefaultMaxMemory.
func FromRequest(r *http.Request, maxMemory int64) Source {
	return SourceFunc(func() ([]File, error) {
		uploads, err := file.FromRequest(r, maxMemory)
		if err != nil {
			return nil, err
		}
		files := make([]File, 0, len(uploads))
		for _, u := range uploads {
			files = append(files, u)
		}
		return files, nil
	})
}

// Files returns a Source over a fixed set of handles.
func Files(files ...File) Source {
	return SourceFunc(func() ([]File, error) { return files, nil })
}
