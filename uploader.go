package uploader

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/dmitrymomot/uploader/pkg/file"
	"github.com/dmitrymomot/uploader/pkg/logger"
	"github.com/dmitrymomot/uploader/pkg/sanitizer"
)

// SanitizeFunc reduces a string to a filesystem-safe form.
type SanitizeFunc func(input, replacement string, transliterate bool) string

// Placement describes a file moved to its destination.
type Placement struct {
	Field     string `json:"field"`
	Path      string `json:"path"`
	Directory string `json:"directory"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
}

// Uploader validates and places the files of a single upload request.
// It is not safe for concurrent use.
type Uploader struct {
	source      Source
	rules       *RuleSet
	validator   *Validator
	logger      *slog.Logger
	sanitize    SanitizeFunc
	extraChecks []namedCheck

	files    []File
	fetched  bool
	fetchErr error

	info     []Placement
	warnings []Warning
	failures []MoveFailure
}

// New creates an Uploader reading files from src.
// A nil src behaves as an upload without files.
func New(src Source, opts ...Option) *Uploader {
	u := &Uploader{
		source:   src,
		rules:    NewRuleSet(),
		logger:   logger.NewNope(),
		sanitize: sanitizer.ToLatin,
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.validator == nil {
		u.validator = NewValidator()
	}
	for _, c := range u.extraChecks {
		u.validator.Register(c.name, c.fn)
	}
	u.extraChecks = nil

	return u
}

// SetRules registers additional rules. Existing names are overwritten.
func (u *Uploader) SetRules(rules map[string]any) *Uploader {
	u.rules.Set(rules)
	return u
}

// Rules returns the uploader's rule set.
func (u *Uploader) Rules() *RuleSet { return u.rules }

// Validator returns the uploader's validator.
func (u *Uploader) Validator() *Validator { return u.validator }

// SetFiles replaces the file set and skips fetching from the source.
func (u *Uploader) SetFiles(files []File) *Uploader {
	u.files = files
	u.fetched = true
	u.fetchErr = nil
	return u
}

// IsValid runs every rule against every genuine file and reports whether the
// error sequence is empty.
//
// Errors accumulate: calling IsValid twice on the same file set records every
// failure twice. Use a new Uploader, or Validator().Reset(), for a fresh run.
func (u *Uploader) IsValid() bool {
	files, err := u.fetch()
	if err != nil {
		u.validator.Add(ValidationError{Message: err.Error()})
		u.logger.Warn("failed to fetch uploaded files", logger.Error(err))
		return false
	}

	rules := u.rules.All()
	for _, rule := range rules {
		if placementRules[rule.Name] {
			continue
		}
		if _, ok := u.validator.Lookup(rule.Name); !ok {
			u.warn(rule.Name, "no check registered for rule")
		}
	}

	genuine := u.genuine(files)
	for _, f := range genuine {
		for _, rule := range rules {
			u.validator.Check(f, rule)
		}
	}

	if rule, ok := u.rules.Get(RuleRequired); ok && rule.Bool() {
		u.checkPresence(genuine, rule)
	}

	errs := u.validator.Errors()
	u.logger.Debug("validated uploaded files",
		logger.Count("files", len(genuine)),
		logger.Count("errors", len(errs)),
	)

	return errs.IsEmpty()
}

// checkPresence enforces the pipeline-level side of the required rule.
// A list names the form fields that must carry a file; any other truthy
// value requires at least one file.
func (u *Uploader) checkPresence(files []File, rule Rule) {
	if !rule.IsList() {
		if len(files) == 0 {
			u.validator.Add(ValidationError{Rule: RuleRequired, Message: ErrNoFiles.Error()})
		}
		return
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Field()] = true
	}
	for _, field := range rule.List() {
		if !present[field] {
			u.validator.Add(ValidationError{Field: field, Rule: RuleRequired, Message: "file is required"})
		}
	}
}

// Move places every genuine file in the destination directory and returns
// the placements made by this call. It does not validate; call IsValid first.
// Failed moves never abort the loop and are reported by Failures. A file whose
// destination was already used by this uploader is not moved and fails with
// ErrDuplicatePath, so one upload never overwrites another.
func (u *Uploader) Move(ctx context.Context) []Placement {
	files, err := u.fetch()
	if err != nil {
		u.logger.WarnContext(ctx, "failed to fetch uploaded files", logger.Error(err))
		return nil
	}

	genuine := u.genuine(files)
	dir := u.destination()
	if dir == "" && len(genuine) > 0 {
		u.warn(RuleDirectory, "neither directory nor dynamic rule is set")
	}

	// Paths placed by this uploader, including earlier Move calls.
	taken := make(map[string]bool, len(u.info)+len(genuine))
	for _, p := range u.info {
		taken[p.Path] = true
	}

	var placed []Placement
	start := len(u.failures)
	for i, f := range genuine {
		if err := ctx.Err(); err != nil {
			for _, rest := range genuine[i:] {
				u.fail(ctx, rest, "", err)
			}
			break
		}
		if dir == "" {
			u.fail(ctx, f, "", ErrNoDestination)
			continue
		}

		filename, err := u.filename(f)
		if err != nil {
			u.fail(ctx, f, "", err)
			continue
		}

		path := joinPath(dir, filename)
		if taken[path] {
			u.fail(ctx, f, path, ErrDuplicatePath)
			continue
		}
		size, ext := f.Size(), f.Extension()
		if err := f.MoveTo(path); err != nil {
			u.fail(ctx, f, path, err)
			continue
		}
		taken[path] = true

		p := Placement{
			Field:     f.Field(),
			Path:      path,
			Directory: dir,
			Filename:  filename,
			Size:      size,
			Extension: ext,
		}
		placed = append(placed, p)
		u.logger.DebugContext(ctx, "placed uploaded file",
			logger.Field(p.Field),
			logger.Filename(p.Filename),
			logger.Path(p.Path),
		)
	}

	u.info = append(u.info, placed...)
	u.logger.InfoContext(ctx, "moved uploaded files",
		logger.Count("placed", len(placed)),
		logger.Count("failed", len(u.failures)-start),
	)

	return placed
}

// Errors returns the accumulated validation errors.
func (u *Uploader) Errors() ValidationErrors { return u.validator.Errors() }

// Info returns every placement made so far.
func (u *Uploader) Info() []Placement { return slices.Clone(u.info) }

// Warnings returns the configuration gaps found so far.
func (u *Uploader) Warnings() []Warning { return slices.Clone(u.warnings) }

// Failures returns the files that could not be moved.
func (u *Uploader) Failures() []MoveFailure { return slices.Clone(u.failures) }

// Truncate removes every placed file that still exists. It is safe to call
// repeatedly; placement records are kept.
func (u *Uploader) Truncate() error {
	var errs []error
	removed := 0
	for _, p := range u.info {
		if !file.Exists(p.Path) {
			continue
		}
		if err := file.Remove(p.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	if len(u.info) > 0 {
		u.logger.Info("removed placed files",
			logger.Count("removed", removed),
			logger.Errors(errs...),
		)
	}
	return errors.Join(errs...)
}

// UniqueName returns prefix followed by a time-ordered unique token.
func (u *Uploader) UniqueName(prefix string) string { return UniqueName(prefix) }

func (u *Uploader) fetch() ([]File, error) {
	if u.fetched {
		return u.files, u.fetchErr
	}
	u.fetched = true
	if u.source == nil {
		return nil, nil
	}
	u.files, u.fetchErr = u.source.Files()
	return u.files, u.fetchErr
}

// genuine drops nil handles and handles that are not real uploads.
func (u *Uploader) genuine(files []File) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f == nil || !f.IsUploaded() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// destination returns the directory or dynamic rule without trailing separators.
func (u *Uploader) destination() string {
	sep := string(os.PathSeparator)
	for _, name := range []string{RuleDirectory, RuleDynamic} {
		rule, ok := u.rules.Get(name)
		if !ok || rule.String() == "" {
			continue
		}
		if dir := strings.TrimRight(rule.String(), "/"+sep); dir != "" {
			return dir
		}
		return sep
	}
	return ""
}

func (u *Uploader) warn(rule, message string) {
	u.warnings = append(u.warnings, Warning{Rule: rule, Message: message})
	u.logger.Warn(message, logger.Rule(rule))
}

func (u *Uploader) fail(ctx context.Context, f File, path string, err error) {
	u.failures = append(u.failures, MoveFailure{Field: f.Field(), File: f.Name(), Path: path, Err: err})
	u.logger.WarnContext(ctx, "failed to move uploaded file",
		logger.Field(f.Field()),
		logger.Filename(f.Name()),
		logger.Path(path),
		logger.Error(err),
	)
}

func joinPath(dir, filename string) string {
	sep := string(os.PathSeparator)
	if strings.HasSuffix(dir, sep) {
		return dir + filename
	}
	return dir + sep + filename
}
