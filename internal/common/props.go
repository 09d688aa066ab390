package common

import "strings"

// PropEntry is one key headed for a component-call props object literal.
type PropEntry struct {
	Key     string
	Value   string
	Dynamic bool
}

// LowerPropsObject assembles a props object literal for a component call
// (spec §4.3): static entries are plain `key: value`, dynamic entries
// become getters so the framework can re-read them reactively, and any
// spreads are merged in via mergeProps preserving source order so later
// static keys override earlier spreads.
//
// usesMergeProps reports whether the emitter needs to import
// mergeProps; it's true whenever at least one spread was present.
func LowerPropsObject(entries []PropEntry, spreads []string) (expr string, usesMergeProps bool) {
	var obj strings.Builder
	obj.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			obj.WriteString(", ")
		}
		if e.Dynamic {
			obj.WriteString("get " + e.Key + "() { return " + e.Value + "; }")
		} else {
			obj.WriteString(e.Key + ": " + e.Value)
		}
	}
	obj.WriteByte('}')
	plain := obj.String()

	if len(spreads) == 0 {
		return plain, false
	}
	parts := append(append([]string{}, spreads...), plain)
	return "mergeProps(" + strings.Join(parts, ", ") + ")", true
}

// LowerChildrenThunk implements spec §4.3's children-arity rule: zero
// children are omitted entirely, one child becomes `children: () =>
// child`, and several become `children: () => [a, b, ...]`. The thunk
// is always present once there is at least one child, regardless of
// dynamism, matching the reference behavior of always deferring
// through a function so the framework controls evaluation timing --
// except when the lone child already is a function expression (spec
// §8 S6: `For`/`Index`'s item function), which is passed through as
// `children: (i) => ...` directly rather than double-wrapped in
// another zero-arg thunk that would change `props.children`'s arity.
func LowerChildrenThunk(children []string) (entry string, ok bool) {
	switch len(children) {
	case 0:
		return "", false
	case 1:
		if IsFunctionExpression(children[0]) {
			return "children: " + children[0], true
		}
		return "children: () => " + children[0], true
	default:
		return "children: () => [" + strings.Join(children, ", ") + "]", true
	}
}
