package validation

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Scalar captures a JSON scalar verbatim so that a type mismatch (a number
// where a string is expected, or the other way around) surfaces as a field
// rule failure instead of a request decode error. A quoted string is stored
// without its quotes; numbers, booleans and null keep their literal form.
type Scalar string

// UnmarshalJSON never fails: whatever token the field holds is kept as text
// for the rules to judge.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(data)
	return nil
}

// String returns the captured token. An absent field yields "".
func (s Scalar) String() string {
	return string(s)
}

// FieldError describes a single failed rule, shaped like the API error body.
type FieldError struct {
	Msg   string `json:"msg"`   // Human-readable failure message
	Param string `json:"param"` // Name of the offending field
}

// Rule binds a field name to a predicate and the message reported when the
// predicate fails.
type Rule struct {
	Param string
	Msg   string
	Check func() bool
}

// Validate runs every rule and collects all failures. It does not
// short-circuit across fields, so the response lists every invalid field.
func Validate(rules []Rule) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, FieldError{Msg: rule.Msg, Param: rule.Param})
		}
	}
	return errs
}

// PositiveDecimal reports whether s parses as a decimal with at most two
// fractional digits and a value strictly greater than zero.
func PositiveDecimal(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Exponent() >= -2 && d.IsPositive()
}

// PositiveInt reports whether s parses as an integer strictly greater than zero.
func PositiveInt(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n > 0
}

// OneOf reports whether s equals one of the allowed values exactly.
func OneOf(s string, allowed ...string) bool {
	for _, v := range allowed {
		if s == v {
			return true
		}
	}
	return false
}
