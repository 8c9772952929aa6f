package uploader

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/uploader/pkg/file"
)

// NameFunc generates a base filename for the hash or name rule.
type NameFunc func() string

// UniqueName returns prefix followed by 32 hex characters of a UUIDv7.
// Tokens sort by creation time.
func UniqueName(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + strings.ReplaceAll(id.String(), "-", "")
}

// filename resolves the destination filename of f:
//   - hash: a content digest (md5 when empty), a generated name, or a literal base name;
//   - otherwise name: the sanitized literal base name;
//   - sanitize: re-sanitizes whatever was chosen.
//
// Path components are always stripped. A name left without a base part gets
// a UniqueName base instead.
func (u *Uploader) filename(f File) (string, error) {
	name := f.Name()
	ext := f.Extension()

	if rule, ok := u.rules.Get(RuleHash); ok {
		base, err := hashName(f, rule)
		if err != nil {
			return "", err
		}
		name = withExtension(base, ext)
	} else if rule, ok := u.rules.Get(RuleName); ok && !rule.IsEmpty() {
		base := rule.String()
		if rule.IsCallable() {
			generated, ok := callName(rule.Value)
			if !ok {
				return "", fmt.Errorf("%w: %T", ErrUnsupportedCallable, rule.Value)
			}
			base = generated
		}
		name = withExtension(u.sanitize(base, "", true), ext)
	}

	if rule, ok := u.rules.Get(RuleSanitize); ok && rule.Bool() {
		name = u.sanitize(name, "", true)
	}

	name = file.SanitizeFilename(name)
	if stem := strings.TrimSuffix(name, "."+ext); strings.Trim(stem, ".") == "" {
		// sanitizing left no base name, e.g. a CJK name with no transliteration
		name = withExtension(UniqueName(""), ext)
	}
	return name, nil
}

func hashName(f File, rule Rule) (string, error) {
	if rule.IsCallable() {
		name, ok := callName(rule.Value)
		if !ok {
			return "", fmt.Errorf("%w: %T", ErrUnsupportedCallable, rule.Value)
		}
		return name, nil
	}
	if rule.IsList() {
		return "", fmt.Errorf("%w: hash expects an algorithm, a name or func() string", ErrInvalidRule)
	}

	value := rule.String()
	if value == "" || value == "1" {
		value = file.HashMD5
	}
	if !file.IsHashAlgorithm(value) {
		return value, nil
	}

	h, err := file.NewHash(value)
	if err != nil {
		return "", err
	}
	return file.Hash(f, h)
}

func callName(v any) (string, bool) {
	switch fn := v.(type) {
	case NameFunc:
		return fn(), true
	case func() string:
		return fn(), true
	}
	return "", false
}

func withExtension(base, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + ext
}
