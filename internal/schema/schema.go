// Package schema assembles raw label/value text maps into typed
// records. A Schema is a declarative table mapping each logical field to
// its source key, normalizer and target kind; fan-out (one raw key
// feeding several logical fields) is expressed by repeating the source
// key with different normalizers.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"tickerscrape/internal/clean"
)

// Kind is the target type a field is coerced to after normalization.
type Kind uint8

const (
	// String keeps the cleaned text as-is.
	String Kind = iota
	// Int coerces to a whole number.
	Int
	// Float coerces to a decimal number.
	Float
	// Bool keeps a boolean flag.
	Bool
	// Date keeps a calendar date.
	Date
)

// Field describes one logical field of a record.
type Field struct {
	// Name is the logical field name records are keyed by.
	Name string
	// Source is the raw map key the value is read from. Defaults to
	// Name when empty.
	Source string
	// Kind is the target type.
	Kind Kind
	// Clean normalizes the raw token. Defaults to clean.Common.
	Clean clean.Func
	// Required aborts assembly when the field is absent or fails to
	// normalize. Optional fields simply become absent.
	Required bool
	// DashMissing opts this field into treating a lone "-" as a
	// missing-value sentinel (option table cells).
	DashMissing bool
}

// Schema is an ordered set of field definitions for one record kind.
type Schema struct {
	Kind   string
	Fields []Field
}

// Record holds the assembled, typed values keyed by logical field name.
// Absent fields are present in the map as missing values.
type Record map[string]clean.Value

// AssemblyError reports which field of which record kind failed.
type AssemblyError struct {
	RecordKind string
	Field      string
	Err        error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling %s: field %q: %v", e.RecordKind, e.Field, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Merge layers raw key/value maps with first-writer-wins precedence:
// earlier layers shadow later ones for the same key. Callers pass the
// quote header map before the detail table map.
func Merge(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged
}

// Assemble resolves every schema field against raw, normalizes it and
// coerces it to the field's kind. A missing or malformed optional field
// becomes absent; a missing or malformed required field aborts the
// whole record.
func (s *Schema) Assemble(raw map[string]string) (Record, error) {
	rec := make(Record, len(s.Fields))

	for _, f := range s.Fields {
		source := f.Source
		if source == "" {
			source = f.Name
		}

		token, ok := raw[source]
		if !ok || (f.DashMissing && clean.IsMissingOrDash(token)) {
			if f.Required {
				return nil, &AssemblyError{s.Kind, f.Name, fmt.Errorf("required field absent")}
			}
			rec[f.Name] = clean.Missing()
			continue
		}

		normalize := f.Clean
		if normalize == nil {
			normalize = clean.Common
		}

		v, err := normalize(token)
		if err == nil && !v.IsMissing() {
			v, err = coerce(v, f.Kind)
		}
		if err != nil {
			if f.Required {
				return nil, &AssemblyError{s.Kind, f.Name, err}
			}
			v = clean.Missing()
		}
		if v.IsMissing() && f.Required {
			return nil, &AssemblyError{s.Kind, f.Name, fmt.Errorf("required field missing")}
		}

		rec[f.Name] = v
	}

	return rec, nil
}

// coerce converts a normalized value to the target kind. Suffix-expanded
// integers convert freely to floats; strings parse to numbers.
func coerce(v clean.Value, kind Kind) (clean.Value, error) {
	switch kind {
	case String:
		if s, ok := v.Str(); ok {
			return clean.Str(s), nil
		}
		return v, nil
	case Int:
		if n, ok := v.Int(); ok {
			return clean.Int(n), nil
		}
		if s, ok := v.Str(); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return clean.Missing(), fmt.Errorf("not an integer: %q", s)
			}
			return clean.Int(int64(math.Round(f))), nil
		}
	case Float:
		if f, ok := v.Float(); ok {
			return clean.Float(f), nil
		}
		if n, ok := v.Int(); ok {
			return clean.Float(float64(n)), nil
		}
		if s, ok := v.Str(); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return clean.Missing(), fmt.Errorf("not a number: %q", s)
			}
			return clean.Float(f), nil
		}
	case Bool:
		if _, ok := v.Bool(); ok {
			return v, nil
		}
	case Date:
		if _, ok := v.Date(); ok {
			return v, nil
		}
	}
	return clean.Missing(), fmt.Errorf("cannot coerce %v to kind %d", v.Kind(), kind)
}

// Str returns the string field or "".
func (r Record) Str(name string) string {
	s, _ := r[name].Str()
	return s
}

// FloatPtr returns the float field or nil when absent.
func (r Record) FloatPtr(name string) *float64 {
	if f, ok := r[name].Float(); ok {
		return &f
	}
	return nil
}

// IntPtr returns the integer field or nil when absent.
func (r Record) IntPtr(name string) *int64 {
	if n, ok := r[name].Int(); ok {
		return &n
	}
	return nil
}

// StrPtr returns the string field or nil when absent.
func (r Record) StrPtr(name string) *string {
	if s, ok := r[name].Str(); ok {
		return &s
	}
	return nil
}

// DatePtr returns the date field or nil when absent.
func (r Record) DatePtr(name string) *time.Time {
	if t, ok := r[name].Date(); ok {
		return &t
	}
	return nil
}
