package file

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (32MB).
// Larger parts are spooled to temporary files by net/http.
const DefaultMaxMemory = 32 << 20

// Upload is a file handle for one part of a multipart/form-data request.
type Upload struct {
	field  string
	header *multipart.FileHeader
	moved  bool
}

// NewUpload wraps a multipart file header received under the given form field.
func NewUpload(field string, fh *multipart.FileHeader) *Upload {
	return &Upload{field: field, header: fh}
}

// FromRequest enumerates every file part of a multipart request.
// The order is deterministic: form fields sorted by name, then parts in the
// order they were sent. The form is parsed with maxMemory if it was not already
// parsed; pass 0 to use DefaultMaxMemory.
//
// Temporary files created by the parser belong to the request; call
// r.MultipartForm.RemoveAll once the upload is handled.
func FromRequest(r *http.Request, maxMemory int64) ([]*Upload, error) {
	if r == nil {
		return nil, ErrNotMultipart
	}

	if r.MultipartForm == nil {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			return nil, ErrNotMultipart
		}
		if maxMemory <= 0 {
			maxMemory = DefaultMaxMemory
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseMultipart, err)
		}
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, nil
	}

	fields := make([]string, 0, len(r.MultipartForm.File))
	for field := range r.MultipartForm.File {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var uploads []*Upload
	for _, field := range fields {
		for _, fh := range r.MultipartForm.File[field] {
			uploads = append(uploads, NewUpload(field, fh))
		}
	}

	return uploads, nil
}

// Field returns the form field the file was sent under.
func (u *Upload) Field() string { return u.field }

// Name returns the client supplied filename.
func (u *Upload) Name() string {
	if u.header == nil {
		return ""
	}
	return u.header.Filename
}

// Size returns the declared size in bytes.
func (u *Upload) Size() int64 {
	if u.header == nil {
		return 0
	}
	return u.header.Size
}

// Extension returns the lower-cased extension without the leading dot.
func (u *Upload) Extension() string { return Extension(u.Name()) }

// Header returns the underlying multipart header.
func (u *Upload) Header() *multipart.FileHeader { return u.header }

// IsUploaded reports whether the handle is a genuine, not yet moved upload.
// Forged or empty form entries carry no header or no filename.
func (u *Upload) IsUploaded() bool {
	return u.header != nil && u.header.Filename != "" && !u.moved
}

// Open opens the uploaded content for reading.
func (u *Upload) Open() (io.ReadCloser, error) {
	if u == nil || u.header == nil {
		return nil, ErrNilFileHeader
	}
	f, err := u.header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

// MoveTo writes the uploaded content to dst. It succeeds at most once.
func (u *Upload) MoveTo(dst string) error {
	if u.moved {
		return ErrAlreadyMoved
	}

	src, err := u.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if _, err := CopyTo(src, dst); err != nil {
		return err
	}

	u.moved = true
	return nil
}
