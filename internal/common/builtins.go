package common

// BuiltinKind distinguishes the handful of built-in components that get a
// transform beyond plain component-call lowering (spec §4.3) from the
// ones that are recognized only so options.built_ins can toggle
// special-casing later without the emitter needing to guess.
type BuiltinKind int

const (
	NotBuiltin BuiltinKind = iota
	BuiltinFor
	BuiltinIndex
	BuiltinShow
	BuiltinSwitch
	BuiltinMatch
	BuiltinDynamic
	BuiltinPortal
	BuiltinSuspense
	BuiltinSuspenseList
	BuiltinErrorBoundary
)

// builtinTable is a flat, closed map in the style of the teacher's
// skippedAttributes/skippedAttributesToObject maps: the set of names is
// data, not a cascade of string comparisons.
var builtinTable = map[string]BuiltinKind{
	"For":           BuiltinFor,
	"Index":         BuiltinIndex,
	"Show":          BuiltinShow,
	"Switch":        BuiltinSwitch,
	"Match":         BuiltinMatch,
	"Dynamic":       BuiltinDynamic,
	"Portal":        BuiltinPortal,
	"Suspense":      BuiltinSuspense,
	"SuspenseList":  BuiltinSuspenseList,
	"ErrorBoundary": BuiltinErrorBoundary,
}

func defaultBuiltIns() map[string]bool {
	names := make(map[string]bool, len(builtinTable))
	for name := range builtinTable {
		names[name] = true
	}
	return names
}

// LookupBuiltin reports which built-in (if any) tagName names, but only
// when opts.BuiltIns still recognizes it -- a host can narrow or rename
// the set via options.built_ins (spec §3).
func LookupBuiltin(tagName string, recognized map[string]bool) BuiltinKind {
	if recognized != nil && !recognized[tagName] {
		return NotBuiltin
	}
	return builtinTable[tagName]
}
