package document_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/elsense/pkg/document"
	"github.com/walteh/elsense/pkg/elmodel"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

const page = "<p>#{bean.getList().get(0)}</p>"

func beanDescription() *elmodel.Description {
	zero, one := 0, 1
	return &elmodel.Description{
		Instances: []elmodel.InstanceDescription{
			{
				Start: 3,
				End:   26,
				Expression: &elmodel.ExpressionDescription{
					FirstToken: 5,
					Invocations: []elmodel.InvocationDescription{
						{Name: "bean", Start: 5, End: 9},
						{Name: "getList()", Start: 10, End: 18, Left: &zero},
						{Name: "get(0)", Start: 19, End: 25, Left: &one},
					},
				},
			},
		},
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file:///tmp/a.xhtml", "/tmp/a.xhtml"},
		{"file:/tmp/a.xhtml", "/tmp/a.xhtml"},
		{"/tmp/a.xhtml", "/tmp/a.xhtml"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, document.NormalizeURI(tt.in))
		})
	}
}

func TestUpdateAndLocate(t *testing.T) {
	ctx := context.Background()
	mgr := document.NewManager(tokenizer.Options{})

	doc, err := mgr.Update(ctx, "file:///tmp/page.xhtml", page, beanDescription())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/page.xhtml", doc.URI)
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Model.Instances(), 1)
	assert.NotEmpty(t, doc.Result.Tokens)

	got, inv, err := mgr.Locate("/tmp/page.xhtml", 12)
	require.NoError(t, err)
	assert.Same(t, doc, got)
	require.NotNil(t, inv)
	assert.Equal(t, "getList()", inv.Name())

	_, inv, err = mgr.Locate("/tmp/page.xhtml", 1)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestUpdateWithoutDescriptionHasEmptyModel(t *testing.T) {
	mgr := document.NewManager(tokenizer.Options{})

	doc, err := mgr.Update(context.Background(), "a.xhtml", page, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Model.Instances())
	assert.Equal(t, []rune(page), doc.Source())
}

func TestUpdateKeepsOldSnapshot(t *testing.T) {
	ctx := context.Background()
	mgr := document.NewManager(tokenizer.Options{})

	first, err := mgr.Update(ctx, "a.xhtml", page, beanDescription())
	require.NoError(t, err)

	second, err := mgr.Update(ctx, "a.xhtml", "#{x}", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	// the first snapshot is untouched by the swap
	assert.Equal(t, page, first.Content)
	assert.Len(t, first.Model.Instances(), 1)
	inv, ok := elmodel.FindExpression(first.Model, 20)
	require.True(t, ok)
	assert.Equal(t, "get(0)", inv.Name())

	current, ok := mgr.Get("a.xhtml")
	require.True(t, ok)
	assert.Same(t, second, current)
}

func TestUpdateFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	mgr := document.NewManager(tokenizer.Options{})

	prev, err := mgr.Update(ctx, "a.xhtml", page, beanDescription())
	require.NoError(t, err)

	bad := 2
	desc := beanDescription()
	desc.Instances[0].Expression.Invocations[0].Left = &bad

	_, err = mgr.Update(ctx, "a.xhtml", page, desc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building model for a.xhtml")

	current, ok := mgr.Get("a.xhtml")
	require.True(t, ok)
	assert.Same(t, prev, current)
}

func TestLocateUnknownDocument(t *testing.T) {
	mgr := document.NewManager(tokenizer.Options{})

	_, _, err := mgr.Locate("missing.xhtml", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrNotFound))
}

func TestDelete(t *testing.T) {
	mgr := document.NewManager(tokenizer.Options{})

	_, err := mgr.Update(context.Background(), "file:///a.xhtml", page, nil)
	require.NoError(t, err)

	mgr.Delete("/a.xhtml")
	_, ok := mgr.Get("file:///a.xhtml")
	assert.False(t, ok)
}

func TestEmptyURI(t *testing.T) {
	mgr := document.NewManager(tokenizer.Options{})
	_, err := mgr.Update(context.Background(), "file://", page, nil)
	require.Error(t, err)
}

func TestConcurrentReadersDuringUpdates(t *testing.T) {
	ctx := context.Background()
	mgr := document.NewManager(tokenizer.Options{})

	_, err := mgr.Update(ctx, "a.xhtml", page, beanDescription())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				doc, ok := mgr.Get("a.xhtml")
				if !ok {
					continue
				}
				// every snapshot is internally consistent
				assert.Equal(t, []rune(doc.Content), doc.Result.Source)
			}
		}()
	}

	for range 20 {
		_, err := mgr.Update(ctx, "a.xhtml", page, beanDescription())
		require.NoError(t, err)
	}

	wg.Wait()

	doc, ok := mgr.Get("a.xhtml")
	require.True(t, ok)
	assert.Equal(t, 21, doc.Version)
}
