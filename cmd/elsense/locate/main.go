package locate

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/elsense/pkg/config"
	"github.com/walteh/elsense/pkg/elmodel"
	"github.com/walteh/elsense/pkg/hover"
	"github.com/walteh/elsense/pkg/position"
	"github.com/walteh/elsense/pkg/rpc"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	fs        afero.Fs
	out       io.Writer
	modelPath string
	filePath  string
	offset    int
	line      int
	character int
}

// Output is what locate prints
type Output struct {
	rpc.FindExpressionResult
	Hover *hover.LSPHover `json:"hover,omitempty"`
}

func NewLocateCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs, out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "locate --model [model.yaml] --file [document] (--offset N | --line L --col C)",
		Short: "find the invocation under a place in a document",
	}

	cmd.Flags().StringVar(&me.modelPath, "model", "", "model description (yaml or json)")
	cmd.Flags().StringVar(&me.filePath, "file", "", "document the model describes")
	cmd.Flags().IntVar(&me.offset, "offset", -1, "rune offset in the document")
	cmd.Flags().IntVar(&me.line, "line", -1, "zero-based line")
	cmd.Flags().IntVar(&me.character, "col", -1, "zero-based column in runes")

	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
	cmd.MarkFlagsMutuallyExclusive("offset", "col")
	cmd.MarkFlagsRequiredTogether("line", "col")
	cmd.MarkFlagsOneRequired("offset", "line")

	cmd.Args = cobra.NoArgs

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) params() (rpc.LocateParams, error) {
	params := rpc.LocateParams{URI: me.filePath}

	if me.line >= 0 || me.character >= 0 {
		if me.line < 0 || me.character < 0 {
			return params, errors.New("--line and --col must both be set")
		}
		params.Position = &position.Place{Line: me.line, Character: me.character}
		return params, nil
	}

	if me.offset < 0 {
		return params, errors.New("either --offset or --line and --col is required")
	}
	params.Offset = me.offset
	return params, nil
}

func (me *Handler) Run(ctx context.Context) error {
	cfg := config.FromContext(ctx)

	params, err := me.params()
	if err != nil {
		return err
	}

	// 1. read the document and its model description
	content, err := afero.ReadFile(me.fs, me.filePath)
	if err != nil {
		return errors.Errorf("failed to read document: %w", err)
	}

	data, err := afero.ReadFile(me.fs, me.modelPath)
	if err != nil {
		return errors.Errorf("failed to read model description: %w", err)
	}

	desc, err := elmodel.ParseDescription(data)
	if err != nil {
		return err
	}

	// 2. build the document the same way the server does
	server := rpc.NewServer(cfg.TokenizerOptions())
	if _, err := server.SetModel(ctx, &rpc.SetModelParams{URI: me.filePath, Text: string(content), Model: desc}); err != nil {
		return errors.Errorf("failed to load model: %w", err)
	}

	// 3. locate and describe
	found, err := server.FindExpression(ctx, &params)
	if err != nil {
		return errors.Errorf("failed to locate: %w", err)
	}

	out := Output{FindExpressionResult: *found}
	if found.Found {
		hov, err := server.Hover(ctx, &params)
		if err != nil {
			return errors.Errorf("failed to build hover: %w", err)
		}
		out.Hover = hov.Hover
	}

	encoder := json.NewEncoder(me.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return errors.Errorf("failed to encode result: %w", err)
	}

	return nil
}
