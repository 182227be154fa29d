package serve

import (
	"context"
	"io"
	"os"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/elsense/pkg/config"
	"github.com/walteh/elsense/pkg/rpc"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	concurrency int
}

func NewServeCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the tokenizer and locator as JSON-RPC over stdin/stdout",
	}

	cmd.Flags().IntVar(&me.concurrency, "concurrency", 0, "maximum concurrent requests (0 lets jrpc2 decide)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), os.Stdin, os.Stdout)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, in io.Reader, out io.WriteCloser) error {
	cfg := config.FromContext(ctx)

	server := rpc.NewServer(cfg.TokenizerOptions())

	opts := &jrpc2.ServerOptions{
		RPCLog:      &rpc.RPCLogger{},
		Concurrency: me.concurrency,
	}

	zerolog.Ctx(ctx).Info().Str("server_id", server.ID()).Msg("starting el server")

	srv := server.NewJRPCServer(ctx, opts).Start(channel.LSP(in, out))
	if err := srv.Wait(); err != nil {
		return errors.Errorf("error running el server: %w", err)
	}

	return nil
}
