package domgen

import "github.com/jsxgen/compiler/internal/common"

// Interner deduplicates template HTML module-wide (spec invariant #2):
// two JSX subtrees that synthesize identical HTML share one _tmpl$N
// declaration; distinct HTML gets a distinct one. Owned by the emitter
// and threaded through every domgen.Lower call in a compilation, never
// reset mid-module.
type Interner struct {
	ids     *common.IDGen
	byKey   map[string]string
	entries []TemplateEntry
}

// TemplateEntry is one hoisted `const _tmpl$N = template(...)` the
// emitter must print before any code that references it.
type TemplateEntry struct {
	ID        string
	HTML      string
	NodeCount int
	IsSVG     bool
}

func NewInterner(ids *common.IDGen) *Interner {
	return &Interner{ids: ids, byKey: make(map[string]string)}
}

func (in *Interner) intern(html string, nodeCount int, isSVG bool) string {
	key := html + "\x00" + boolKey(isSVG)
	if id, ok := in.byKey[key]; ok {
		return id
	}
	id := in.ids.Next("_tmpl$")
	in.byKey[key] = id
	in.entries = append(in.entries, TemplateEntry{ID: id, HTML: html, NodeCount: nodeCount, IsSVG: isSVG})
	return id
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Entries returns the hoisted template declarations in first-encounter
// order (spec §5: "Template IDs are assigned in source-order first
// encounter").
func (in *Interner) Entries() []TemplateEntry {
	return in.entries
}

// Context carries everything a DOM lowering needs that must stay
// shared and mutable across every JSX root in one compilation: the
// options, the id generator, the template interner, and the running
// hydration-key / delegated-event state (spec §5: "per-compilation
// context passed by reference", no globals).
type Context struct {
	Opts            common.Options
	IDs             *common.IDGen
	Templates       *Interner
	HydrationKeys   *hydrationCounter
	DelegatedEvents *orderedSet
}

func NewContext(opts common.Options, ids *common.IDGen, templates *Interner) *Context {
	return &Context{
		Opts:            opts,
		IDs:             ids,
		Templates:       templates,
		HydrationKeys:   &hydrationCounter{},
		DelegatedEvents: newOrderedSet(),
	}
}

// SetScope installs the per-compilation scope id this context's
// hydration keys should be prefixed with (see hydrationCounter.SetScope).
func (c *Context) SetScope(scope string) {
	c.HydrationKeys.SetScope(scope)
}

// hydrationCounter assigns stable, monotonic data-hk keys (spec
// invariant #7: pairwise distinct within one root). One counter serves
// every root of a compilation, so keys are already distinct across the
// module; scope, when set, folds a per-file id ahead of the counter so
// keys from different files stay distinct too (see SetScope).
type hydrationCounter struct {
	n     int
	scope string
}

// SetScope installs the per-compilation scope id (spec §6: "opaque
// ASCII strings ... the core only needs to guarantee uniqueness within
// a root and determinism given identical input") ahead of every key
// this counter hands out from this point on.
func (h *hydrationCounter) SetScope(scope string) {
	h.scope = scope
}

func (h *hydrationCounter) Next() string {
	h.n++
	if h.scope != "" {
		return h.scope + "-h" + itoa(h.n)
	}
	return "h" + itoa(h.n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// orderedSet preserves first-seen insertion order, used for the
// delegated-event registration list (spec invariant #6).
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (o *orderedSet) Add(s string) {
	if !o.seen[s] {
		o.seen[s] = true
		o.order = append(o.order, s)
	}
}

func (o *orderedSet) Values() []string {
	return o.order
}
