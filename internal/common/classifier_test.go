package common

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestIsStaticExpression(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		static bool
	}{
		{"string literal", `"hello"`, true},
		{"single-quoted string", `'hello'`, true},
		{"number literal", `42`, true},
		{"float literal", `3.14`, true},
		{"hex literal", `0xFF`, true},
		{"bool literal", `true`, true},
		{"null literal", `null`, true},
		{"undefined literal", `undefined`, true},
		{"regex literal", `/abc/gi`, true},
		{"negative number", `-5`, true},
		{"negated bool", `!true`, true},
		{"typeof on literal", `typeof "x"`, true},
		{"identifier", `count`, false},
		{"member access", `props.name`, false},
		{"call expression", `getValue()`, false},
		{"template with interpolation", "`hi ${name}`", false},
		{"conditional", `flag ? "a" : "b"`, false},
		{"arithmetic on identifiers", `a + b`, false},
		{"logical on identifiers", `a && b`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, IsStaticExpression(tc.expr), tc.static)
		})
	}
}

func TestReferencedIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"plain identifier", `count`, []string{"count"}},
		{"member access keeps root only", `props.name`, []string{"props"}},
		{"string contents excluded", `"count"`, nil},
		{"template interpolation counted", "`hi ${name}`", []string{"name"}},
		{"call expression", `getValue(x)`, []string{"getValue", "x"}},
		{"literal has none", `42`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ReferencedIdentifiers(tc.expr)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ReferencedIdentifiers(%q) mismatch (-want +got):\n%s", tc.expr, diff)
			}
		})
	}
}

func TestIsDynamicChildExpression(t *testing.T) {
	assert.Equal(t, IsDynamicChildExpression(`"static"`), false)
	assert.Equal(t, IsDynamicChildExpression(`count`), true)
	assert.Equal(t, IsDynamicChildExpression(`42`), false)
}
