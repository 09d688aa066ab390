package common

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements cannot have a closing tag; the DOM template must omit one
// and the SSR chunker must never open a content slot for them (spec §4.1,
// invariant 4). Kept as a flat map literal in the style of the teacher's
// own voidElements table (internal/printer/print-to-js.go) rather than
// switching on atom.Lookup, since several of these names round-trip
// through atom fine but the set itself reads better as data.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// svgElements is the SVG 1.1 tag set used for namespace decisions --
// property-vs-attribute lowering in DOM mode and attribute-quoting rules
// in SSR both change once a subtree is known to be SVG. golang.org/x/net
// /html/atom has no SVG coverage, so this table stays string-keyed.
var svgElements = map[string]bool{
	"svg": true, "altGlyph": true, "altGlyphDef": true, "altGlyphItem": true,
	"animate": true, "animateColor": true, "animateMotion": true, "animateTransform": true,
	"circle": true, "clipPath": true, "color-profile": true, "cursor": true, "defs": true,
	"desc": true, "ellipse": true, "feBlend": true, "feColorMatrix": true,
	"feComponentTransfer": true, "feComposite": true, "feConvolveMatrix": true,
	"feDiffuseLighting": true, "feDisplacementMap": true, "feDistantLight": true,
	"feFlood": true, "feFuncA": true, "feFuncB": true, "feFuncG": true, "feFuncR": true,
	"feGaussianBlur": true, "feImage": true, "feMerge": true, "feMergeNode": true,
	"feMorphology": true, "feOffset": true, "fePointLight": true, "feSpecularLighting": true,
	"feSpotLight": true, "feTile": true, "feTurbulence": true, "filter": true,
	"font": true, "font-face": true, "font-face-format": true, "font-face-name": true,
	"font-face-src": true, "font-face-uri": true, "foreignObject": true, "g": true,
	"glyph": true, "glyphRef": true, "hkern": true, "image": true, "line": true,
	"linearGradient": true, "marker": true, "mask": true, "metadata": true,
	"missing-glyph": true, "mpath": true, "path": true, "pattern": true, "polygon": true,
	"polyline": true, "radialGradient": true, "rect": true, "set": true, "stop": true,
	"switch": true, "symbol": true, "text": true, "textPath": true, "title": true,
	"tref": true, "tspan": true, "use": true, "view": true, "vkern": true,
}

func IsSVGElement(tag string) bool {
	return svgElements[tag]
}

// booleanAttributes render presence-only: the attribute's value is
// ignored in HTML and only its presence/absence matters.
var booleanAttributes = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true, "autoplay": true,
	"checked": true, "controls": true, "default": true, "disabled": true,
	"formnovalidate": true, "hidden": true, "indeterminate": true, "inert": true,
	"ismap": true, "loop": true, "multiple": true, "muted": true, "nomodule": true,
	"novalidate": true, "open": true, "playsinline": true, "readonly": true,
	"required": true, "reversed": true, "selected": true, "seamless": true,
}

func IsBooleanAttribute(name string) bool {
	return booleanAttributes[name]
}

// delegatedEventsBase is the fixed set of event names the runtime is
// willing to delegate to a single root listener. Options.DelegatedEvents
// is unioned in at compile time, not baked into this table.
var delegatedEventsBase = map[string]bool{
	"click": true, "input": true, "change": true, "keydown": true, "keyup": true,
	"mousedown": true, "mouseup": true, "submit": true, "focusin": true,
	"focusout": true, "dblclick": true, "pointerdown": true, "pointerup": true,
	"pointermove": true, "touchstart": true, "touchmove": true, "touchend": true,
}

// DelegatedEventSet returns the base set unioned with any host-configured
// additions, used both to classify an onX handler and to decide what
// delegateEvents([...]) must register.
func DelegatedEventSet(extra []string) map[string]bool {
	set := make(map[string]bool, len(delegatedEventsBase)+len(extra))
	for name := range delegatedEventsBase {
		set[name] = true
	}
	for _, name := range extra {
		set[name] = true
	}
	return set
}

// attributeAliases covers the two JSX-ism -> HTML renames spec §4.1 calls
// out explicitly; applied during attribute lowering.
var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

func AliasAttribute(name string) string {
	if alias, ok := attributeAliases[name]; ok {
		return alias
	}
	return name
}

// IsKnownHTMLElement reports whether tag round-trips through the HTML
// atom table, i.e. is one of the WHATWG-named elements rather than a
// custom element or a typo'd tag. Used to decide whether an all-lowercase,
// dash-free tag name should be treated as a plain (non-custom) element.
func IsKnownHTMLElement(tag string) bool {
	return atom.Lookup([]byte(strings.ToLower(tag))) != 0
}

// IsCustomElementName reports whether tag looks like a custom element
// per spec §4.3: all-lowercase and containing a hyphen.
func IsCustomElementName(tag string) bool {
	if !strings.Contains(tag, "-") {
		return false
	}
	return tag == strings.ToLower(tag)
}

// IsComponentTagName reports whether tag should be treated as a
// component call rather than an element: it begins uppercase or
// contains a dot (spec §4.3).
func IsComponentTagName(tag string) bool {
	if tag == "" {
		return false
	}
	if strings.Contains(tag, ".") {
		return true
	}
	r := tag[0]
	return r >= 'A' && r <= 'Z'
}
