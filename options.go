package uploader

import "log/slog"

// Option configures an Uploader.
type Option func(*Uploader)

// WithRules registers the initial rules.
func WithRules(rules map[string]any) Option {
	return func(u *Uploader) {
		u.rules.Set(rules)
	}
}

// WithValidator replaces the default validator. Nil is ignored.
func WithValidator(v *Validator) Option {
	return func(u *Uploader) {
		if v != nil {
			u.validator = v
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(u *Uploader) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithSanitizer replaces sanitizer.ToLatin as the filename sanitizer.
func WithSanitizer(fn SanitizeFunc) Option {
	return func(u *Uploader) {
		if fn != nil {
			u.sanitize = fn
		}
	}
}

// WithCheck registers a check on the uploader's validator. Checks are applied
// after all options, so the order relative to WithValidator does not matter.
func WithCheck(name string, fn CheckFunc) Option {
	return func(u *Uploader) {
		u.extraChecks = append(u.extraChecks, namedCheck{name: name, fn: fn})
	}
}

type namedCheck struct {
	name string
	fn   CheckFunc
}
