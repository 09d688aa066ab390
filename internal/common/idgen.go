package common

import (
	"fmt"
	"path"
	"strings"

	"github.com/iancoleman/strcase"
)

// IDGen hands out monotonic, prefixed identifiers (_el$1, _tmpl$2, ...)
// scoped to one compilation. Grounded on the teacher's per-file counters
// (getComponentName/getTSXComponentName derive one name from the
// filename; here every element/template/ref needs its own counter), kept
// as simple per-prefix counters rather than one global counter so
// template ids and element ids don't visibly compete for small numbers.
type IDGen struct {
	counters map[string]int
}

func NewIDGen() *IDGen {
	return &IDGen{counters: make(map[string]int)}
}

// Next returns the next identifier for prefix, e.g. Next("_el$") -> "_el$1".
func (g *IDGen) Next(prefix string) string {
	g.counters[prefix]++
	return fmt.Sprintf("%s%d", prefix, g.counters[prefix])
}

// ComponentNameFromFilename mirrors the teacher's getComponentName: derive
// a PascalCase identifier from the last path segment, stripped of its
// extension, falling back to a generic name for stdin/empty input.
func ComponentNameFromFilename(filename string) string {
	if filename == "" || filename == "<stdin>" {
		return "AnonymousComponent"
	}
	base := path.Base(filename)
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	if base == "" {
		return "AnonymousComponent"
	}
	return strcase.ToCamel(base)
}
