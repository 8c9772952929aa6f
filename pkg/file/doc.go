// Package file provides the uploaded-file handles and filesystem primitives used
// by the uploader pipeline.
//
// Two handle types are provided:
//   - Upload: one part of a multipart/form-data request
//   - Local: a file already written to the local filesystem (temporary location)
//
// Both expose the same accessors (Field, Name, Size, Extension, IsUploaded,
// Open) and a one-time MoveTo primitive. A successful move consumes the handle;
// a failed move leaves the source untouched.
//
// # Usage
//
//	uploads, err := file.FromRequest(r, file.DefaultMaxMemory)
//	if err != nil {
//		return err
//	}
//	defer r.MultipartForm.RemoveAll()
//
//	for _, u := range uploads {
//		mimeType, _ := file.DetectMIME(u)
//		sum, _ := file.Hash(u, md5.New())
//		_ = u.MoveTo(filepath.Join("/var/uploads", sum+"."+u.Extension()))
//	}
//
// # Content inspection
//
// DetectMIME reads only the first 512 bytes and trusts magic bytes over the
// client supplied filename. Hash streams content without loading it into memory;
// NewHash resolves the algorithm names md5, sha1, sha256 and xxhash.
//
// # Security Considerations
//
//   - SanitizeFilename strips path components and NUL bytes
//   - MIME detection uses file content, not the extension
//   - Files are created with 0644, directories with 0755
//   - Partial files are removed when a copy fails
//
// # Error Handling
//
// All I/O errors wrap a package sentinel so callers can branch with errors.Is:
//
//	if errors.Is(err, file.ErrAlreadyMoved) {
//		// handle was consumed by an earlier move
//	}
package file
