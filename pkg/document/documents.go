// Package document keeps the latest tokenized text and model for each open
// document. Updates replace the whole document so readers never see a
// half-built model.
package document

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/elsense/pkg/elmodel"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

var ErrNotFound = errors.Base("document not found")

// NormalizeURI removes the file:// prefix so paths and URIs share a key
func NormalizeURI(uri string) string {
	uri = strings.TrimPrefix(uri, "file://")
	uri = strings.TrimPrefix(uri, "file:")
	return uri
}

// Document is an immutable snapshot of one text and its model
type Document struct {
	URI     string
	Version int
	Content string
	Result  *tokenizer.Result
	Model   *elmodel.Model
}

// Source returns the document text as runes
func (me *Document) Source() []rune {
	if me.Result != nil {
		return me.Result.Source
	}
	return []rune(me.Content)
}

// Locate finds the invocation under offset in this snapshot's model
func (me *Document) Locate(offset int) (*elmodel.Invocation, bool) {
	return elmodel.FindExpression(me.Model, offset)
}

// Manager handles document operations
type Manager struct {
	store   *sync.Map // map[string]*Document
	options tokenizer.Options
	mu      sync.Mutex // serializes version bumps
}

func NewManager(opts tokenizer.Options) *Manager {
	return &Manager{
		store:   &sync.Map{},
		options: opts,
	}
}

func (me *Manager) Get(uri string) (*Document, bool) {
	content, ok := me.store.Load(NormalizeURI(uri))
	if !ok || content == nil {
		return nil, false
	}
	doc, ok := content.(*Document)
	return doc, ok
}

// Update tokenizes text, builds its model from desc and replaces the stored
// document. On error the previous document stays in place.
func (me *Manager) Update(ctx context.Context, uri string, text string, desc *elmodel.Description) (*Document, error) {
	key := NormalizeURI(uri)
	if key == "" {
		return nil, errors.New("empty document uri")
	}

	result := tokenizer.Tokenize(ctx, text, me.options)

	model := elmodel.NewModel()
	if desc != nil {
		built, err := desc.Build(result.Tokens)
		if err != nil {
			return nil, errors.Errorf("building model for %s: %w", key, err)
		}
		model = built
	}

	me.mu.Lock()
	defer me.mu.Unlock()

	version := 1
	if prev, ok := me.Get(key); ok {
		version = prev.Version + 1
	}

	doc := &Document{
		URI:     key,
		Version: version,
		Content: text,
		Result:  result,
		Model:   model,
	}

	me.store.Store(key, doc)

	zerolog.Ctx(ctx).Debug().
		Str("uri", key).
		Int("version", version).
		Int("tokens", len(result.Tokens)).
		Int("instances", len(model.Instances())).
		Msg("document updated")

	return doc, nil
}

func (me *Manager) Delete(uri string) {
	me.store.Delete(NormalizeURI(uri))
}

// Locate finds the invocation under offset in the current model of uri
func (me *Manager) Locate(uri string, offset int) (*Document, *elmodel.Invocation, error) {
	doc, ok := me.Get(uri)
	if !ok {
		return nil, nil, errors.Errorf("%w: %s", ErrNotFound, uri)
	}

	inv, ok := doc.Locate(offset)
	if !ok {
		return doc, nil, nil
	}

	return doc, inv, nil
}
