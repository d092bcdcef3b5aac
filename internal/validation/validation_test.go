package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalar_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"quoted string", `{"v":"50.00"}`, "50.00"},
		{"number", `{"v":25.5}`, "25.5"},
		{"integer", `{"v":1}`, "1"},
		{"non-numeric string", `{"v":"abc"}`, "abc"},
		{"boolean", `{"v":true}`, "true"},
		{"null", `{"v":null}`, "null"},
		{"absent", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				V Scalar `json:"v"`
			}
			assert.NoError(t, json.Unmarshal([]byte(tt.body), &dst))
			assert.Equal(t, tt.want, dst.V.String())
		})
	}
}

func TestPositiveDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two decimal places", "50.00", true},
		{"integer", "50", true},
		{"one decimal place", "0.5", true},
		{"smallest valid", "0.01", true},
		{"zero", "0", false},
		{"zero with decimals", "0.00", false},
		{"negative", "-10.00", false},
		{"three decimal places", "50.000", false},
		{"many decimal places", "1.2345", false},
		{"empty", "", false},
		{"not a number", "fifty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositiveDecimal(tt.input))
		})
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"one", "1", true},
		{"large", "999999", true},
		{"zero", "0", false},
		{"negative", "-1", false},
		{"decimal", "1.5", false},
		{"empty", "", false},
		{"not a number", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositiveInt(tt.input))
		})
	}
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf("DEPOSIT", "DEPOSIT", "WITHDRAWAL"))
	assert.True(t, OneOf("WITHDRAWAL", "DEPOSIT", "WITHDRAWAL"))
	assert.False(t, OneOf("deposit", "DEPOSIT", "WITHDRAWAL"))
	assert.False(t, OneOf("", "DEPOSIT", "WITHDRAWAL"))
	assert.False(t, OneOf("TRANSFER", "DEPOSIT", "WITHDRAWAL"))
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	rules := []Rule{
		{Param: "amount", Msg: "bad amount", Check: func() bool { return false }},
		{Param: "transaction_type", Msg: "bad type", Check: func() bool { return true }},
		{Param: "user", Msg: "bad user", Check: func() bool { return false }},
	}

	errs := Validate(rules)

	assert.Len(t, errs, 2)
	assert.Equal(t, FieldError{Msg: "bad amount", Param: "amount"}, errs[0])
	assert.Equal(t, FieldError{Msg: "bad user", Param: "user"}, errs[1])
}

func TestValidate_AllPass(t *testing.T) {
	rules := []Rule{
		{Param: "status", Msg: "bad status", Check: func() bool { return true }},
	}

	assert.Empty(t, Validate(rules))
}
