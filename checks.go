package uploader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrymomot/uploader/pkg/file"
)

func builtinChecks() map[string]CheckFunc {
	return map[string]CheckFunc{
		RuleSize:      checkSize,
		RuleExtension: checkExtension,
		"extensions":  checkExtension,
		RuleMimeType:  checkMimeType,
		"mimes":       checkMimeType,
		RuleRequired:  checkRequired,
		RuleCallback:  checkCallback,
		RuleDirectory: checkDirectory,
		RuleDynamic:   checkDynamic,
	}
}

// checkSize accepts a scalar maximum or a map with "min" and/or "max".
// Limits are bytes or carry a K, M or G suffix ("512K", "2M", "1.5G").
func checkSize(f File, rule Rule) error {
	var minRaw, maxRaw string
	if rule.IsList() {
		var hasMin, hasMax bool
		minRaw, hasMin = rule.Lookup("min")
		maxRaw, hasMax = rule.Lookup("max")
		if !hasMin && !hasMax {
			return fmt.Errorf("%w: size expects min and/or max keys", ErrInvalidRule)
		}
	} else {
		maxRaw = rule.String()
	}

	size := f.Size()
	if minRaw != "" {
		limit, err := ParseSize(minRaw)
		if err != nil {
			return err
		}
		if size < limit {
			return fmt.Errorf("file is smaller than the minimum size of %s", minRaw)
		}
	}
	if maxRaw != "" {
		limit, err := ParseSize(maxRaw)
		if err != nil {
			return err
		}
		if size > limit {
			return fmt.Errorf("file exceeds the maximum size of %s", maxRaw)
		}
	}
	return nil
}

// ParseSize converts a size limit such as "1024", "512K", "2MB" or "1.5G"
// to bytes. Units are binary: 1K is 1024 bytes.
func ParseSize(s string) (int64, error) {
	raw := s
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "B")

	multiplier := int64(1)
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'K':
			multiplier = 1 << 10
		case 'M':
			multiplier = 1 << 20
		case 'G':
			multiplier = 1 << 30
		}
		if multiplier > 1 {
			s = strings.TrimSpace(s[:n-1])
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: size limit %q", ErrInvalidRule, raw)
	}

	// float64(math.MaxInt64) rounds up to 2^63, which no longer fits an int64
	bytes := value * float64(multiplier)
	if bytes >= float64(math.MaxInt64) {
		return 0, fmt.Errorf("%w: size limit %q is out of range", ErrInvalidRule, raw)
	}
	return int64(bytes), nil
}

func checkExtension(f File, rule Rule) error {
	allowed := rule.List()
	if len(allowed) == 0 {
		return nil
	}

	ext := f.Extension()
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimPrefix(a, "."), ext) {
			return nil
		}
	}
	return fmt.Errorf("extension %q is not allowed, expected one of: %s", ext, strings.Join(allowed, ", "))
}

func checkMimeType(f File, rule Rule) error {
	allowed := rule.List()
	if len(allowed) == 0 {
		return nil
	}

	mimeType, err := file.DetectMIME(f)
	if err != nil {
		return fmt.Errorf("cannot detect MIME type: %v", err)
	}
	if !file.MatchMIME(mimeType, allowed...) {
		return fmt.Errorf("MIME type %q is not allowed, expected one of: %s", mimeType, strings.Join(allowed, ", "))
	}
	return nil
}

// checkRequired rejects empty files. Presence of the field itself is
// enforced by the pipeline.
func checkRequired(f File, rule Rule) error {
	if !rule.Bool() {
		return nil
	}
	if f.Size() == 0 {
		return errors.New("file is empty")
	}
	return nil
}

func checkCallback(f File, rule Rule) error {
	switch fn := rule.Value.(type) {
	case CheckFunc:
		return fn(f, rule)
	case func(File, Rule) error:
		return fn(f, rule)
	case func(File) error:
		return fn(f)
	case func(File) bool:
		if !fn(f) {
			return errors.New("file was rejected")
		}
		return nil
	}

	if rule.IsCallable() {
		return fmt.Errorf("%w: %T", ErrUnsupportedCallable, rule.Value)
	}
	if rule.IsEmpty() {
		return nil
	}
	return fmt.Errorf("%w: callback must be a function", ErrInvalidRule)
}

func checkDirectory(_ File, rule Rule) error {
	dir := rule.String()
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("directory %q does not exist", dir)
	case err != nil:
		return fmt.Errorf("directory %q is not accessible: %v", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%q is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".upload-check-*")
	if err != nil {
		return fmt.Errorf("directory %q is not writable", dir)
	}
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
	return nil
}

func checkDynamic(_ File, rule Rule) error {
	dir := rule.String()
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", file.ErrFailedToCreateDirectory, err)
	}
	return nil
}
