// Command jsxgen is a small standalone binary: read one JSX source file,
// run it through transform.Transform, and write the resulting
// {code, map} document to stdout as JSON. It exists for local
// debugging/snapshotting outside a bundler integration (spec §2), not as
// the primary host binding -- that's cmd/jsxgen-wasm. Grounded on the
// teacher's cmd/astro/astro.go: a thin main() that reads source, calls
// the library, and writes the result, with no flag parsing beyond what
// the job needs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/transform"
)

type output struct {
	Code string `json:"code"`
	Map  string `json:"map,omitempty"`
}

func main() {
	var (
		generate       = flag.String("generate", "dom", `lowering mode: "dom", "ssr", or "universal"`)
		moduleName     = flag.String("module", "", "runtime module specifier for the injected import")
		hydratable     = flag.Bool("hydratable", false, "emit hydration keys and getNextElement reads")
		delegateEvents = flag.Bool("delegate-events", true, "use event delegation for supported event types")
		sourceMap      = flag.Bool("sourcemap", false, "emit a source map alongside the compiled code")
		out            = flag.String("o", "", "output file path (defaults to stdout)")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: jsxgen [flags] <file.jsx>")
		os.Exit(2)
	}

	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsxgen:", err)
		os.Exit(1)
	}

	generateMode, ok := common.ParseGenerateMode(*generate)
	if !ok {
		fmt.Fprintf(os.Stderr, "jsxgen: unrecognized -generate value %q\n", *generate)
		os.Exit(2)
	}

	opts := common.Options{
		ModuleName:     *moduleName,
		Generate:       generateMode,
		Hydratable:     *hydratable,
		DelegateEvents: *delegateEvents,
		Filename:       filename,
		SourceMap:      *sourceMap,
	}

	result, err := transform.Transform(string(src), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsxgen:", err)
		os.Exit(1)
	}

	encoded, err := json.Marshal(output{Code: result.Code, Map: result.Map})
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsxgen:", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(encoded)
		fmt.Println()
		return
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "jsxgen:", err)
		os.Exit(1)
	}
}
