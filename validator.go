package uploader

import (
	"errors"
	"slices"
)

// CheckFunc validates one file against one rule. A nil error means the file
// passes. Joined errors are recorded as one ValidationError per component.
type CheckFunc func(f File, rule Rule) error

// Validator dispatches rules to checks by exact name and accumulates the
// resulting errors. A Validator belongs to one pipeline run and must not be
// shared between concurrent uploads.
type Validator struct {
	checks map[string]CheckFunc
	errors ValidationErrors
}

// NewValidator creates a validator with the built-in checks registered.
func NewValidator() *Validator {
	v := &Validator{checks: make(map[string]CheckFunc)}
	for name, fn := range builtinChecks() {
		v.checks[name] = fn
	}
	return v
}

// Register adds or replaces the check for name. A nil fn removes it.
func (v *Validator) Register(name string, fn CheckFunc) *Validator {
	if fn == nil {
		delete(v.checks, name)
		return v
	}
	v.checks[name] = fn
	return v
}

// Unregister removes the check for name.
func (v *Validator) Unregister(name string) {
	delete(v.checks, name)
}

// Lookup returns the check registered for name.
func (v *Validator) Lookup(name string) (CheckFunc, bool) {
	fn, ok := v.checks[name]
	return fn, ok
}

// Names returns the registered rule names, sorted.
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.checks))
	for name := range v.checks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check runs the check registered for rule.Name against f and records any
// failure. It reports whether a check was registered; unregistered names
// leave the error sequence untouched.
func (v *Validator) Check(f File, rule Rule) bool {
	fn, ok := v.checks[rule.Name]
	if !ok {
		return false
	}
	if err := fn(f, rule); err != nil {
		v.record(f, rule.Name, err)
	}
	return true
}

// Add appends an error that does not come from a check, such as a missing
// required field.
func (v *Validator) Add(err ValidationError) {
	v.errors.Add(err)
}

// Errors returns a copy of the accumulated errors.
func (v *Validator) Errors() ValidationErrors {
	return slices.Clone(v.errors)
}

// Reset clears the accumulated errors.
func (v *Validator) Reset() {
	v.errors = nil
}

func (v *Validator) record(f File, rule string, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if e != nil {
				v.record(f, rule, e)
			}
		}
		return
	}

	verr := ValidationError{Field: f.Field(), File: f.Name(), Rule: rule, Message: err.Error()}
	var custom ValidationError
	if errors.As(err, &custom) {
		verr.Message = custom.Message
	}
	v.errors.Add(verr)
}
