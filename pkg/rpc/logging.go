package rpc

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/rs/zerolog"
)

var _ jrpc2.RPCLogger = (*RPCLogger)(nil)

// RPCLogger writes every request and response to the zerolog logger in ctx
type RPCLogger struct {
}

func (me *RPCLogger) LogRequest(ctx context.Context, req *jrpc2.Request) {
	zerolog.Ctx(ctx).Debug().Str("rpc_params", req.ParamString()).Str("rpc_id", req.ID()).Str("rpc_method", req.Method()).Msg("client request")
}

func (me *RPCLogger) LogResponse(ctx context.Context, res *jrpc2.Response) {
	evt := zerolog.Ctx(ctx).Debug().Str("rpc_id", res.ID())
	if err := res.Error(); err != nil {
		evt = evt.Err(err)
	} else {
		evt = evt.Str("rpc_result", res.ResultString())
	}
	evt.Msg("server response")
}
