package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type Logger struct {
	out     io.Writer
	err     io.Writer
	quiet   bool
	verbose bool
}

func DefaultLogger() Logger {
	return Logger{
		out: os.Stdout,
		err: os.Stderr,
	}
}

func NewLogger(out, err io.Writer, quiet, verbose bool) Logger {
	return Logger{
		out:     out,
		err:     err,
		quiet:   quiet,
		verbose: verbose,
	}
}

type loggerKey struct{}

// WithContext attaches this logger to the context, for retrieval by Ctx.
func (l Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Ctx returns the logger attached to the context, or a default logger if
// none was attached.
func Ctx(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return DefaultLogger()
}

func (l *Logger) Out(f string, args ...interface{}) {
	fmt.Fprintf(l.out, f+"\n", args...)
}

func (l *Logger) OutRaw(s string) {
	fmt.Fprintf(l.out, "%s", s)
}

func (l *Logger) Info(tag string, f string, args ...interface{}) {
	if l.quiet {
		return
	}
	print(l.err, color.New(color.FgHiGreen), tag, f, args...)
}

func (l *Logger) Debug(tag string, f string, args ...interface{}) {
	if l.verbose && !l.quiet {
		print(l.err, color.New(color.FgGreen), tag, f, args...)
	}
}

func print(w io.Writer, tagColor *color.Color, tag, f string, args ...interface{}) {
	str := fmt.Sprintf(f, args...)
	for _, line := range strings.Split(str, "\n") {
		fmt.Fprintf(w, "%s  %s\n",
			tagColor.Sprint(tag),
			color.WhiteString(line))
	}
}

type Writer struct {
	pipe  io.Writer
	tag   string
	quiet bool
}

// InfoWriter returns an io.Writer that relays everything written to it as
// tagged log lines.  It is handed to subprocesses as their stdout/stderr.
func (l *Logger) InfoWriter(tag string) *Writer {
	return &Writer{
		pipe:  l.err,
		tag:   tag,
		quiet: l.quiet,
	}
}

func (w *Writer) Write(data []byte) (n int, err error) {
	if w.quiet {
		return len(data), nil
	}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		fmt.Fprintf(w.pipe, "%s  %s\n",
			color.HiYellowString(w.tag),
			color.HiWhiteString(line))
	}
	return len(data), nil
}
