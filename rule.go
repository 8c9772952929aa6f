package uploader

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Rule names understood by the built-in checks and by Move.
const (
	RuleSize      = "size"
	RuleExtension = "extension"
	RuleMimeType  = "mimetype"
	RuleRequired  = "required"
	RuleCallback  = "callback"
	RuleDirectory = "directory"
	RuleDynamic   = "dynamic"
	RuleHash      = "hash"
	RuleName      = "name"
	RuleSanitize  = "sanitize"
)

// placementRules only drive naming in Move and have no validation check.
var placementRules = map[string]bool{
	RuleHash:     true,
	RuleName:     true,
	RuleSanitize: true,
}

// Rule is a single named configuration entry.
//
// Value holds one of three shapes:
//   - a trimmed string (scalar form);
//   - a non-empty slice, array or map, stored verbatim;
//   - a non-nil func, stored verbatim.
type Rule struct {
	Name  string
	Value any
}

// NewRule normalizes value: lists and callables are kept as-is, anything
// else is coerced to a string and trimmed. Empty lists and maps become "".
func NewRule(name string, value any) Rule {
	if isList(value) || isCallable(value) {
		return Rule{Name: name, Value: value}
	}
	return Rule{Name: name, Value: strings.TrimSpace(scalar(value))}
}

// IsList reports whether the rule holds a list or map value.
func (r Rule) IsList() bool { return isList(r.Value) }

// IsCallable reports whether the rule holds a func value.
func (r Rule) IsCallable() bool { return isCallable(r.Value) }

// IsEmpty reports whether the rule holds the empty scalar.
func (r Rule) IsEmpty() bool {
	s, ok := r.Value.(string)
	return ok && s == ""
}

// String returns the scalar value. Lists are joined with commas, callables
// yield "".
func (r Rule) String() string {
	switch {
	case r.IsCallable():
		return ""
	case r.IsList():
		return strings.Join(r.List(), ",")
	}
	s, _ := r.Value.(string)
	return s
}

// List returns the items of a list value, or the values of a map value
// ordered by key. A scalar is split on commas. Empty items are dropped.
func (r Rule) List() []string {
	if r.IsCallable() {
		return nil
	}
	if !r.IsList() {
		return splitList(r.String())
	}

	rv := reflect.ValueOf(r.Value)
	var items []string
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		for _, k := range keys {
			items = append(items, strings.TrimSpace(fmt.Sprint(rv.MapIndex(k).Interface())))
		}
	default:
		for i := 0; i < rv.Len(); i++ {
			items = append(items, strings.TrimSpace(fmt.Sprint(rv.Index(i).Interface())))
		}
	}

	return slices.DeleteFunc(items, func(s string) bool { return s == "" })
}

// Lookup returns the entry stored under key when the rule holds a map.
func (r Rule) Lookup(key string) (string, bool) {
	rv := reflect.ValueOf(r.Value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return "", false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return "", false
	}
	return strings.TrimSpace(fmt.Sprint(v.Interface())), true
}

// Bool reports the truthiness of the rule. Lists and callables are truthy;
// the scalars "", "0", "false", "off" and "no" are falsy.
func (r Rule) Bool() bool {
	if r.IsList() || r.IsCallable() {
		return true
	}
	switch strings.ToLower(r.String()) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// RuleSet holds normalized rules keyed by name.
// Iteration follows first-registration order; keys within one Set batch are
// registered in sorted order. Not safe for concurrent use.
type RuleSet struct {
	rules map[string]Rule
	order []string
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// Set registers every entry of rules. Re-registration overwrites the value
// and keeps the original position. Names are not validated here.
func (s *RuleSet) Set(rules map[string]any) *RuleSet {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		s.Add(name, rules[name])
	}
	return s
}

// Add registers a single rule.
func (s *RuleSet) Add(name string, value any) *RuleSet {
	if _, ok := s.rules[name]; !ok {
		s.order = append(s.order, name)
	}
	s.rules[name] = NewRule(name, value)
	return s
}

// Get returns the rule registered under name.
func (s *RuleSet) Get(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Has reports whether a rule is registered under name.
func (s *RuleSet) Has(name string) bool {
	_, ok := s.rules[name]
	return ok
}

// All returns the rules in registration order.
func (s *RuleSet) All() []Rule {
	out := make([]Rule, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.rules[name])
	}
	return out
}

// Names returns the rule names in registration order.
func (s *RuleSet) Names() []string {
	return slices.Clone(s.order)
}

// Len returns the number of registered rules.
func (s *RuleSet) Len() int { return len(s.order) }

func isList(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return false
}

func isCallable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// scalar coerces a non-list, non-callable value to its string form.
// Booleans follow the PHP convention: true is "1", false is "".
func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Func:
		return "" // empty list or nil func
	}
	return fmt.Sprint(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
