// Package debug builds the zerolog loggers used by the CLI and the RPC server.
package debug

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

func hackGetCallerSkipFrameCount(e *zerolog.Event) int {
	// Access the unexported skipFrame field
	v := reflect.ValueOf(e).Elem()
	field := v.FieldByName("skipFrame")

	if field.IsValid() {
		return int(field.Int())
	}

	return 0
}

type CustomCallerHook struct {
	WithColor bool
}

func (c CustomCallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(hackGetCallerSkipFrameCount(e) + 3)
	if !ok {
		return
	}

	funcd := runtime.FuncForPC(pc)
	if funcd == nil {
		return
	}

	pkg, _ := GetPackageAndFuncFromFuncName(funcd.Name())

	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

func GetPackageAndFuncFromFuncName(pc string) (pkg, function string) {
	funcName := pc
	lastSlash := strings.LastIndexByte(funcName, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	firstDot := strings.IndexByte(funcName[lastSlash:], '.') + lastSlash
	if firstDot < lastSlash {
		return funcName, ""
	}

	pkg = funcName[:firstDot]
	function = funcName[firstDot+1:]

	return pkg, function
}

func FormatCaller(pkg, path string, number int, colorize bool) string {
	p := FileNameOfPath(path)
	if colorize {
		p = color.New(color.Bold).Sprint(p)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", number)
		sep := color.New(color.Faint).Sprint(":")

		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, p, sep, num)
	}

	return fmt.Sprintf("%s:%s:%d", pkg, p, number)
}

func FileNameOfPath(path string) string {
	tot := strings.Split(path, "/")
	if len(tot) > 1 {
		return tot[len(tot)-1]
	}

	return path
}

// LoggerOptions configures NewLogger
type LoggerOptions struct {
	Writer    io.Writer
	Level     zerolog.Level
	Color     bool
	Component string
}

// NewLogger returns a console logger with a caller hook
func NewLogger(opts LoggerOptions) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        opts.Writer,
		NoColor:    !opts.Color,
		TimeFormat: "15:04:05.0000",
	}

	ctx := zerolog.New(out).
		Level(opts.Level).
		Hook(CustomCallerHook{WithColor: opts.Color}).
		With().
		Timestamp()

	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}

	return ctx.Logger()
}

// WithLogger stores a new logger in ctx
func WithLogger(ctx context.Context, opts LoggerOptions) context.Context {
	logger := NewLogger(opts)
	return logger.WithContext(ctx)
}
