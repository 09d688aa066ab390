// Package sourcemap builds a standard v3 source map incrementally as the
// printer emits output, mirroring the teacher's "call AddSourceMapping once
// per printed token" idiom instead of doing a second pass over the output.
package sourcemap

import (
	"strings"

	"github.com/jsxgen/compiler/internal/loc"
)

// LineOffsetTable records, for a single line of the original source, the
// byte offset the line starts at so a byte Loc can be turned into a
// {line, column} pair with a binary search.
type LineOffsetTable struct {
	ByteOffsetToStartOfLine int
}

// GenerateLineOffsetTables scans source once and records where every line
// begins. lineCount is a hint (the caller already knows it from splitting
// on "\n" once); we still tolerate it being wrong.
func GenerateLineOffsetTables(source string, lineCount int) []LineOffsetTable {
	if lineCount <= 0 {
		lineCount = 1
	}
	tables := make([]LineOffsetTable, 0, lineCount+1)
	tables = append(tables, LineOffsetTable{ByteOffsetToStartOfLine: 0})
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			tables = append(tables, LineOffsetTable{ByteOffsetToStartOfLine: i + 1})
		}
	}
	return tables
}

// getLineAndColumn returns [line, column], both 0-based.
func getLineAndColumn(tables []LineOffsetTable, start int) [2]int {
	// Binary search for the last table entry at or before start.
	lo, hi := 0, len(tables)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if tables[mid].ByteOffsetToStartOfLine <= start {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	col := start - tables[line].ByteOffsetToStartOfLine
	if col < 0 {
		col = 0
	}
	return [2]int{line, col}
}

// Chunk is a finished fragment of "mappings" VLQ text, ready to be spliced
// into a full source map document.
type Chunk struct {
	Buffer []byte
}

// ChunkBuilder accumulates mappings for one compilation. AddSourceMapping
// is expected to be called once per printed token, with the *current*
// output slice so the builder can recompute the generated line/column
// from its length rather than tracking it separately -- this is the same
// trick the teacher's printer.addSourceMapping relies on.
type ChunkBuilder struct {
	tables []LineOffsetTable

	lastGeneratedLine   int
	lastGeneratedColumn int
	lastOriginalLine    int
	lastOriginalColumn  int
	hasPrevState        bool

	out strings.Builder
}

func MakeChunkBuilder(_ interface{}, tables []LineOffsetTable) ChunkBuilder {
	return ChunkBuilder{tables: tables}
}

// AddSourceMapping records a mapping from the current end of output to the
// given original location. A negative Loc.Start resets the "last mapped
// original position" without emitting a new segment (used between tokens
// that have no meaningful original position, e.g. synthesized punctuation).
func (b *ChunkBuilder) AddSourceMapping(l loc.Loc, output []byte) {
	genLine, genCol := advance(output)

	if l.Start < 0 {
		b.hasPrevState = false
		return
	}

	pos := getLineAndColumn(b.tables, l.Start)

	var segment [5]int
	segment[0] = genCol
	if b.hasPrevState {
		segment[0] = genCol - b.lastGeneratedColumn
		if genLine != b.lastGeneratedLine {
			segment[0] = genCol
		}
	}

	if !b.hasPrevState || genLine != b.lastGeneratedLine {
		for i := b.lastGeneratedLine; i < genLine; i++ {
			b.out.WriteByte(';')
		}
	} else if b.out.Len() > 0 {
		b.out.WriteByte(',')
	}

	b.out.Write(encodeVLQ(segment[0]))
	b.out.Write(encodeVLQ(0)) // source index, always 0 (single source per compilation)
	b.out.Write(encodeVLQ(deltaOrAbs(pos[0], b.lastOriginalLine, b.hasPrevState)))
	b.out.Write(encodeVLQ(deltaOrAbs(pos[1], b.lastOriginalColumn, b.hasPrevState)))

	b.lastGeneratedLine = genLine
	b.lastGeneratedColumn = genCol
	b.lastOriginalLine = pos[0]
	b.lastOriginalColumn = pos[1]
	b.hasPrevState = true
}

func deltaOrAbs(v, prev int, hasPrev bool) int {
	if !hasPrev {
		return v
	}
	return v - prev
}

func (b *ChunkBuilder) GetLineAndColumnForLocation(l loc.Loc) [2]int {
	return getLineAndColumn(b.tables, l.Start)
}

func (b *ChunkBuilder) GenerateChunk(_ []byte) Chunk {
	return Chunk{Buffer: []byte(b.out.String())}
}

func advance(output []byte) (line, col int) {
	for _, c := range output {
		if c == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return
}

var base64 = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

// encodeVLQ encodes a single signed integer as base64 VLQ, the same
// continuation-bit scheme the source-map spec and esbuild's encoder use.
func encodeVLQ(value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	var encoded []byte
	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		encoded = append(encoded, base64[digit])
		if vlq == 0 {
			break
		}
	}
	return encoded
}
