package tokenize

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/elsense/pkg/config"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	fs       afero.Fs
	out      io.Writer
	patterns []string
	jobs     int
	pretty   bool
}

// FileResult is the output for one scanned file
type FileResult struct {
	File     string                `json:"file"`
	Tokens   []tokenizer.TextToken `json:"tokens"`
	Problems []tokenizer.Problem   `json:"problems,omitempty"`
}

func NewTokenizeCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs, out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "tokenize [glob...]",
		Short: "tokenize every file matching the globs and print the tokens as JSON",
	}

	cmd.Flags().IntVar(&me.jobs, "jobs", runtime.NumCPU(), "number of files tokenized at once")
	cmd.Flags().BoolVar(&me.pretty, "pretty", false, "indent the JSON output")
	cmd.Args = cobra.MinimumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.patterns = args
		return me.Run(cmd.Context())
	}

	return cmd
}

// expand resolves the glob patterns to a sorted, de-duplicated file list
func (me *Handler) expand() ([]string, error) {
	fsys := afero.NewIOFS(me.fs)

	var files []string
	for _, pattern := range me.patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func (me *Handler) Run(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	opts := cfg.TokenizerOptions()

	files, err := me.expand()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.Errorf("no files match %v", me.patterns)
	}

	results := make([]*FileResult, len(files))

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	g := new(errgroup.Group)
	g.SetLimit(max(me.jobs, 1))

	for i, file := range files {
		g.Go(func() error {
			data, err := afero.ReadFile(me.fs, file)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, errors.Errorf("reading %s: %w", file, err))
				mu.Unlock()
				return nil
			}

			res := tokenizer.Tokenize(ctx, string(data), opts)
			results[i] = &FileResult{
				File:     file,
				Tokens:   res.TextTokens(),
				Problems: res.Problems,
			}

			zerolog.Ctx(ctx).Debug().Str("file", file).Int("tokens", len(res.Tokens)).Msg("tokenized file")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	encoder := json.NewEncoder(me.out)
	if me.pretty {
		encoder.SetIndent("", "  ")
	}

	for _, res := range results {
		if res == nil {
			continue
		}
		if err := encoder.Encode(res); err != nil {
			return errors.Errorf("failed to encode tokens: %w", err)
		}
	}

	return errs.ErrorOrNil()
}
