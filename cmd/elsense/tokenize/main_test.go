package tokenize

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/elsense/pkg/config"
	"github.com/walteh/elsense/pkg/tokenizer"
)

func newHandler(t *testing.T, files map[string]string, patterns ...string) (*Handler, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	var out bytes.Buffer
	return &Handler{fs: fs, out: &out, patterns: patterns, jobs: 2}, &out
}

func decode(t *testing.T, out *bytes.Buffer) []FileResult {
	t.Helper()

	var results []FileResult
	dec := json.NewDecoder(out)
	for dec.More() {
		var res FileResult
		require.NoError(t, dec.Decode(&res))
		results = append(results, res)
	}
	return results
}

func TestRun(t *testing.T) {
	me, out := newHandler(t, map[string]string{
		"views/a.xhtml":       "<p>#{a.b}</p>",
		"views/deep/b.xhtml":  "${1 + 2}",
		"views/deep/skip.txt": "#{nope}",
	}, "views/**/*.xhtml")

	require.NoError(t, me.Run(context.Background()))

	results := decode(t, out)
	require.Len(t, results, 2)

	assert.Equal(t, "views/a.xhtml", results[0].File)
	assert.Equal(t, "views/deep/b.xhtml", results[1].File)

	var texts []string
	for _, tok := range results[0].Tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"<p>", "#{", "a", ".", "b", "}", "</p>"}, texts)
	assert.Equal(t, tokenizer.TokenName, results[0].Tokens[2].Type)
}

func TestRunUsesConfig(t *testing.T) {
	me, out := newHandler(t, map[string]string{
		"a.xhtml": "@{x} #{y}",
	}, "*.xhtml")

	ctx := config.WithContext(context.Background(), &config.Config{
		ExpressionPrefixes: []string{"@{"},
		SkipWhitespace:     true,
	})
	require.NoError(t, me.Run(ctx))

	results := decode(t, out)
	require.Len(t, results, 1)
	require.Len(t, results[0].Tokens, 4)
	assert.Equal(t, " #{y}", results[0].Tokens[3].Text)
}

func TestRunDeduplicatesOverlappingGlobs(t *testing.T) {
	me, out := newHandler(t, map[string]string{
		"a.xhtml": "#{x}",
	}, "*.xhtml", "**/a.xhtml")

	require.NoError(t, me.Run(context.Background()))
	assert.Len(t, decode(t, out), 1)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		wantErr  string
	}{
		{name: "no matches", patterns: []string{"*.jsp"}, wantErr: "no files match"},
		{name: "bad glob", patterns: []string{"[a"}, wantErr: "invalid glob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			me, _ := newHandler(t, map[string]string{"a.xhtml": "x"}, tt.patterns...)
			err := me.Run(context.Background())
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}

func TestCommandRequiresGlob(t *testing.T) {
	cmd := NewTokenizeCommand(afero.NewMemMapFs())
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
