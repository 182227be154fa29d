package diff_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/elsense/pkg/diff"
	"github.com/walteh/elsense/pkg/tokenizer"
)

type fakeTB struct {
	errors []string
	failed bool
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTB) FailNow() { f.failed = true }

func TestDiffExportedOnly(t *testing.T) {
	a := []tokenizer.Token{{Type: tokenizer.TokenName, Start: 0, End: 3}}
	b := []tokenizer.Token{{Type: tokenizer.TokenName, Start: 0, End: 4}}

	assert.Empty(t, diff.DiffExportedOnly(a, a))

	got := diff.DiffExportedOnly(a, b)
	assert.Contains(t, got, "ACTUAL ⏩️ EXPECTED")
	assert.Contains(t, got, "➕")
	assert.Contains(t, got, "➖")
}

func TestRequireKnownValueEqual(t *testing.T) {
	tb := &fakeTB{}
	diff.RequireKnownValueEqual(tb, "same", "same")
	assert.False(t, tb.failed)

	diff.RequireKnownValueEqual(tb, "want", "got")
	assert.True(t, tb.failed)
	assert.Len(t, tb.errors, 1)
}
