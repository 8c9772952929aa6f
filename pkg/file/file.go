package file

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Opener is anything that can hand out a fresh reader over its content.
// Both Upload and Local satisfy it.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// Hash algorithm names understood by NewHash.
const (
	HashMD5    = "md5"
	HashSHA1   = "sha1"
	HashSHA256 = "sha256"
	HashXXHash = "xxhash"
)

// NewHash returns a fresh hash.Hash for the named algorithm.
// The name is matched case-insensitively; unknown names yield ErrUnknownHash.
func NewHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case HashMD5:
		return md5.New(), nil
	case HashSHA1:
		return sha1.New(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownHash, algorithm)
	}
}

// IsHashAlgorithm reports whether NewHash knows the given name.
func IsHashAlgorithm(name string) bool {
	_, err := NewHash(name)
	return err == nil
}

// Hash streams the content of src through h and returns the hex digest.
// Defaults to SHA256 when h is nil.
//
// Example:
//
//	sum, err := file.Hash(upload, md5.New()) // 32 hex chars
func Hash(src Opener, h hash.Hash) (string, error) {
	if src == nil {
		return "", ErrNilFileHeader
	}
	if h == nil {
		h = sha256.New()
	}

	r, err := src.Open()
	if err != nil {
		return "", err // handles wrap their own open errors
	}
	defer func() { _ = r.Close() }()

	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// DetectMIME detects the MIME type by reading the first 512 bytes of the content.
// Magic bytes are trusted over the client supplied name to prevent spoofing.
// Parameters such as "; charset=utf-8" are stripped from the result.
func DetectMIME(src Opener) (string, error) {
	if src == nil {
		return "", ErrNilFileHeader
	}

	r, err := src.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()

	// 512 bytes is the maximum http.DetectContentType reads
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType, nil
}

// MatchMIME reports whether mimeType matches any of the patterns.
// Supports exact types, "type/*" wildcards and "*/*".
func MatchMIME(mimeType string, patterns ...string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "*/*" || p == mimeType:
			return true
		case strings.HasSuffix(p, "/*"):
			if strings.HasPrefix(mimeType, strings.TrimSuffix(p, "*")) {
				return true
			}
		}
	}
	return false
}

// Extension returns the lower-cased extension of name without the leading dot.
//
// Example:
//
//	ext := file.Extension("photo.JPG") // "jpg"
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// SanitizeFilename removes any path components and NUL bytes from a filename
// to prevent path traversal attacks.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
