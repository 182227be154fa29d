package rpc

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/rs/zerolog"
)

func newParseError(err error) *jrpc2.Error {
	return &jrpc2.Error{
		Code:    jrpc2.ParseError,
		Message: err.Error(),
	}
}

func newInvalidParams(err error) *jrpc2.Error {
	return &jrpc2.Error{
		Code:    jrpc2.InvalidParams,
		Message: err.Error(),
	}
}

// ApplyRequestToZerolog tags the logger in ctx with the request method and id
func ApplyRequestToZerolog(ctx context.Context, req *jrpc2.Request) context.Context {
	return zerolog.Ctx(ctx).With().Str("rpc_method", req.Method()).Str("rpc_id", req.ID()).Logger().WithContext(ctx)
}

func createHandler[T any, O any](method func(ctx context.Context, params *T) (O, error)) handler.Func {
	return handler.New(func(ctx context.Context, r *jrpc2.Request) (interface{}, error) {
		ctx = ApplyRequestToZerolog(ctx, r)
		var params T
		if err := r.UnmarshalParams(&params); err != nil {
			return nil, newParseError(err)
		}

		result, err := method(ctx, &params)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
