// Package diff renders readable differences between expected and actual
// values for test failures.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// TB is the part of testing.TB the helpers need
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// DiffExportedOnly pretty prints both values, ignoring unexported fields, and
// returns a line diff. An empty string means the values print the same.
func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	abc := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")

	return str
}

// RequireKnownValueEqual stops the test when want and got differ in any
// exported field.
func RequireKnownValueEqual[T any](t TB, want T, got T) {
	t.Helper()
	if d := DiffExportedOnly(want, got); d != "" {
		t.Errorf("unexpected diff: %s", d)
		t.FailNow()
	}
}
