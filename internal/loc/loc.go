// Package loc carries byte-offset source positions through the compiler
// pipeline, from the parser façade down to the printer's source-map
// emission.
package loc

// Loc is a 0-based byte offset from the start of the source file.
type Loc struct {
	Start int
}

// Range is a span of bytes, Loc inclusive through Loc+Len exclusive.
type Range struct {
	Loc Loc
	Len int
}

func (r Range) End() int {
	return r.Loc.Start + r.Len
}

// Span is a half-open range used by the parser façade while it still owns
// the underlying buffer.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}
