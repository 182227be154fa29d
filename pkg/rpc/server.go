// Package rpc serves the tokenizer and the invocation locator over JSON-RPC 2.0.
package rpc

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/elsense/pkg/document"
	"github.com/walteh/elsense/pkg/hover"
	"github.com/walteh/elsense/pkg/position"
	"github.com/walteh/elsense/pkg/semtok"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

// Server holds the documents clients have sent
type Server struct {
	id        string
	documents *document.Manager
	options   tokenizer.Options
}

func NewServer(opts tokenizer.Options) *Server {
	return &Server{
		id:        uuid.NewString(),
		documents: document.NewManager(opts),
		options:   opts,
	}
}

func (me *Server) ID() string {
	return me.id
}

func (me *Server) Documents() *document.Manager {
	return me.documents
}

func (me *Server) Tokenize(ctx context.Context, params *TokenizeParams) (*TokenizeResult, error) {
	result := tokenizer.Tokenize(ctx, params.Text, me.options)

	return &TokenizeResult{
		Tokens:   result.TextTokens(),
		Problems: result.Problems,
	}, nil
}

func (me *Server) SetModel(ctx context.Context, params *SetModelParams) (*SetModelResult, error) {
	if params.URI == "" {
		return nil, newInvalidParams(errors.New("uri is required"))
	}

	doc, err := me.documents.Update(ctx, params.URI, params.Text, params.Model)
	if err != nil {
		return nil, newInvalidParams(err)
	}

	return &SetModelResult{
		URI:       doc.URI,
		Version:   doc.Version,
		Tokens:    len(doc.Result.Tokens),
		Instances: len(doc.Model.Instances()),
	}, nil
}

func (me *Server) FindExpression(ctx context.Context, params *LocateParams) (*FindExpressionResult, error) {
	doc, offset, err := me.resolve(params)
	if err != nil {
		return nil, err
	}

	inv, ok := doc.Locate(offset)
	if !ok {
		zerolog.Ctx(ctx).Debug().Int("offset", offset).Msg("no invocation at offset")
		return &FindExpressionResult{Found: false}, nil
	}

	source := doc.Source()
	found := newInvocationResult(source, inv)
	res := &FindExpressionResult{
		Found:      true,
		Invocation: &found,
	}
	for _, step := range inv.Chain() {
		res.Chain = append(res.Chain, newInvocationResult(source, step))
	}

	return res, nil
}

func (me *Server) Hover(ctx context.Context, params *LocateParams) (*HoverResult, error) {
	doc, offset, err := me.resolve(params)
	if err != nil {
		return nil, err
	}

	inv, ok := doc.Locate(offset)
	if !ok {
		return &HoverResult{Found: false}, nil
	}

	info, err := hover.FormatHoverResponse(ctx, doc.Source(), inv)
	if err != nil {
		return nil, errors.Errorf("formatting hover: %w", err)
	}

	return &HoverResult{
		Found: true,
		Hover: info.ToLSPHover(doc.Content),
	}, nil
}

func (me *Server) SemanticTokens(ctx context.Context, params *SemanticTokensParams) (*SemanticTokensResult, error) {
	doc, ok := me.documents.Get(params.URI)
	if !ok {
		return nil, newInvalidParams(errors.Errorf("%w: %s", document.ErrNotFound, params.URI))
	}

	return &SemanticTokensResult{
		Legend: semtok.DefaultLegend(),
		Data:   semtok.Encode(semtok.FromResult(ctx, doc.Result)),
	}, nil
}

// resolve looks up the document and turns the requested place into an offset
func (me *Server) resolve(params *LocateParams) (*document.Document, int, error) {
	doc, ok := me.documents.Get(params.URI)
	if !ok {
		return nil, 0, newInvalidParams(errors.Errorf("%w: %s", document.ErrNotFound, params.URI))
	}

	if params.Position == nil {
		return doc, params.Offset, nil
	}

	offset, ok := position.OffsetOf(doc.Content, *params.Position)
	if !ok {
		return nil, 0, newInvalidParams(errors.Errorf("position %s is outside %s", params.Position, doc.URI))
	}
	return doc, offset, nil
}

func buildDispatchMap(server *Server) handler.Map {
	return handler.Map{
		MethodTokenize:       createHandler(server.Tokenize),
		MethodSetModel:       createHandler(server.SetModel),
		MethodFindExpression: createHandler(server.FindExpression),
		MethodHover:          createHandler(server.Hover),
		MethodSemanticTokens: createHandler(server.SemanticTokens),
	}
}

// NewJRPCServer builds a jrpc2 server whose handler contexts carry the logger
// from ctx, tagged with the server id.
func (me *Server) NewJRPCServer(ctx context.Context, opts *jrpc2.ServerOptions) *jrpc2.Server {
	if opts == nil {
		opts = &jrpc2.ServerOptions{}
	}
	if opts.RPCLog == nil {
		opts.RPCLog = &RPCLogger{}
	}

	base := zerolog.Ctx(ctx).With().Str("server_id", me.id).Logger().WithContext(ctx)
	opts.NewContext = func() context.Context {
		return base
	}

	return jrpc2.NewServer(buildDispatchMap(me), opts)
}
