package clean

import "time"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindMissing marks an absent value. Absence is a real outcome,
	// never coerced to zero.
	KindMissing Kind = iota
	// KindString holds a cleaned string.
	KindString
	// KindInt holds a whole number (e.g. expanded "2.5M").
	KindInt
	// KindFloat holds a decimal number.
	KindFloat
	// KindBool holds a boolean flag.
	KindBool
	// KindDate holds a calendar date.
	KindDate
)

// Value is the result of normalizing one scraped token. It is a closed
// sum over missing/string/int/float/bool/date.
type Value struct {
	kind    Kind
	str     string
	integer int64
	float   float64
	boolean bool
	date    time.Time
}

// Missing returns the absent value.
func Missing() Value { return Value{kind: KindMissing} }

// Str wraps a string value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer value.
func Int(i int64) Value { return Value{kind: KindInt, integer: i} }

// Float wraps a float value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Date wraps a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the absent value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the string variant.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Int returns the integer variant.
func (v Value) Int() (int64, bool) { return v.integer, v.kind == KindInt }

// Float returns the float variant.
func (v Value) Float() (float64, bool) { return v.float, v.kind == KindFloat }

// Bool returns the boolean variant.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBool }

// Date returns the date variant.
func (v Value) Date() (time.Time, bool) { return v.date, v.kind == KindDate }
