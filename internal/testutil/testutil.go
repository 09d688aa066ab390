// Package testutil collects the small test-support helpers shared
// across package-level test files: readable fixture dedenting, a
// golden-snapshot wrapper, and a line diff for failure output.
// Grounded on the teacher's internal/test_utils/test_utils.go (Dedent,
// MakeSnapshot) and the teacher's otherwise-unused `github.com/pkg/diff`
// dependency, given a job here it never had there.
package testutil

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lithammer/dedent"
	"github.com/pkg/diff"
)

// Dedent trims a multi-line fixture literal down to its minimal common
// indentation and collapses runs of blank lines, mirroring the
// teacher's Dedent helper so JSX/JS fixtures in test source stay
// readable at the call site.
func Dedent(input string) string {
	return dedent.Dedent(
		strings.ReplaceAll(
			strings.TrimLeft(
				strings.TrimRight(input, " \n\r"),
				" \t\r\n"),
			"\n\n\n", "\n\n"),
	)
}

// MatchSnapshot records output as a golden fixture under __snapshots__,
// keyed by the test's name, the same convention as the teacher's
// MakeSnapshot but trimmed to the one field every call site here
// actually needs.
func MatchSnapshot(t *testing.T, output string) {
	t.Helper()
	snaps.MatchSnapshot(t, output)
}

// Diff renders a human-readable unified diff between two strings for
// use in a test failure message, using the teacher's otherwise-dropped
// github.com/pkg/diff dependency.
func Diff(wantName, gotName, want, got string) string {
	var b strings.Builder
	if err := diff.Text(wantName, gotName, want, got, &b); err != nil {
		return "(failed to render diff: " + err.Error() + ")\nwant:\n" + want + "\ngot:\n" + got
	}
	return b.String()
}
